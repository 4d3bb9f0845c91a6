package brochure

import (
	"math"

	dvec3 "github.com/flywave/go3d/float64/vec3"
)

// Hinge 面板相对父面板的铰链: Local = T(Pivot) * Ry(Angle) * T(Offset)
type Hinge struct {
	Pivot  dvec3.T `json:"pivot"`
	Angle  float64 `json:"angle"`
	Offset dvec3.T `json:"offset"`
}

func (h Hinge) Transform() Transform {
	return Translation(h.Pivot[0], h.Pivot[1], h.Pivot[2]).
		Mul(RotationY(h.Angle)).
		Mul(Translation(h.Offset[0], h.Offset[1], h.Offset[2]))
}

// Fold is the signed fold of the hinge: positive when the free edge of the
// panel swings toward +Z, negative when it swings toward -Z.
func (h Hinge) Fold() float64 {
	switch {
	case h.Offset[0] > 0:
		return -h.Angle
	case h.Offset[0] < 0:
		return h.Angle
	}
	return 0
}

func (h Hinge) Magnitude() float64 {
	return math.Abs(h.Angle)
}

// Panel 单个面板的描述, 引擎的输出
type Panel struct {
	Slot   int                     `json:"slot"`
	Parent int                     `json:"parent"`
	Role   PanelRole               `json:"role"`
	Local  Transform               `json:"local"`
	Hinge  Hinge                   `json:"hinge"`
	Size   dvec3.T                 `json:"size"`
	Window UVWindow                `json:"window"`
	Faces  [FaceCount]MeshMaterial `json:"faces"`
}

func (p *Panel) IsAnchor() bool {
	return p.Parent < 0
}

func (p *Panel) Outer() MeshMaterial {
	return p.Faces[FACE_OUTER]
}

func (p *Panel) Inner() MeshMaterial {
	return p.Faces[FACE_INNER]
}

// InnerWindow is the window the inner face samples from a spread image.
func (p *Panel) InnerWindow() UVWindow {
	return p.Window.Mirror()
}
