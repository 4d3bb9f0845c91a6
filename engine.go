package brochure

import (
	"math"
	"strconv"

	dvec3 "github.com/flywave/go3d/float64/vec3"
)

// Params 引擎输入
type Params struct {
	Type         BrochureType
	Cover        CoverPosition
	FoldProgress float64
	PanelHeight  float64
	Textures     TextureAssignment
}

func PanelCount(t BrochureType) int {
	if t == Bifold {
		return 2
	}
	return 3
}

// MaxFoldAngle returns the hinge angle reached at full fold progress.
func MaxFoldAngle(t BrochureType) float64 {
	if t == Bifold {
		return math.Pi * BifoldMaxFold
	}
	return math.Pi * TrifoldMaxFold
}

func HingeAngle(t BrochureType, progress float64) float64 {
	return ClampProgress(progress) * MaxFoldAngle(t)
}

// ClampProgress limits progress to [0,1]; NaN is treated as a flat sheet.
func ClampProgress(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func (p Params) validate() error {
	if !p.Type.Valid() {
		return &ConfigurationError{Field: "type", Value: string(p.Type)}
	}
	if !p.Cover.Valid() {
		return &ConfigurationError{Field: "cover", Value: string(p.Cover)}
	}
	if p.PanelHeight <= 0 || math.IsInf(p.PanelHeight, 0) || math.IsNaN(p.PanelHeight) {
		return &ConfigurationError{Field: "panel height", Value: strconv.FormatFloat(p.PanelHeight, 'g', -1, 64)}
	}
	return nil
}

// ComputePanels 根据折页参数计算全部面板, 按物理位置从左到右返回
func ComputePanels(p Params) ([]Panel, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	var panels []Panel
	if p.Type == Bifold {
		panels = bifoldPanels(p)
	} else {
		panels = trifoldPanels(p)
	}
	size := dvec3.T{PanelWidth, p.PanelHeight, Thickness}
	windows := spreadWindows(len(panels))
	for i := range panels {
		pn := &panels[i]
		pn.Slot = i
		pn.Size = size
		pn.Window = windows[i]
		if pn.Parent >= 0 {
			pn.Role = RoleWing
			pn.Local = pn.Hinge.Transform()
		}
		pn.Faces = faceMaterials(i, pn.Window, p.Textures)
	}
	return panels, nil
}

const half = PanelWidth / 2

// bifoldPanels anchors the cover-side panel; the other swings on the shared hinge.
func bifoldPanels(p Params) []Panel {
	angle := HingeAngle(Bifold, p.FoldProgress)
	panels := make([]Panel, 2)
	if p.Cover == CoverLeft {
		panels[1] = Panel{Parent: -1, Local: Translation(PanelWidth, 0, 0)}
		panels[0] = Panel{Parent: 1, Hinge: Hinge{
			Pivot:  dvec3.T{-half, 0, 0},
			Angle:  -angle,
			Offset: dvec3.T{-half, 0, 0},
		}}
		return panels
	}
	panels[0] = Panel{Parent: -1, Local: Translation(-PanelWidth, 0, 0)}
	panels[1] = Panel{Parent: 0, Hinge: Hinge{
		Pivot:  dvec3.T{half, 0, 0},
		Angle:  angle,
		Offset: dvec3.T{half, 0, 0},
	}}
	return panels
}

// trifoldPanels anchors the centre panel. The right wing always folds toward
// the viewer; the left wing follows it for a roll fold and opposes it for a z-fold.
func trifoldPanels(p Params) []Panel {
	angle := HingeAngle(p.Type, p.FoldProgress)
	left := angle
	if p.Type == TrifoldZ {
		left = -angle
	}
	return []Panel{
		{Parent: 1, Hinge: Hinge{
			Pivot:  dvec3.T{-half, 0, 0},
			Angle:  left,
			Offset: dvec3.T{-half, 0, 0},
		}},
		{Parent: -1, Local: IdentTransform},
		{Parent: 1, Hinge: Hinge{
			Pivot:  dvec3.T{half, 0, 0},
			Angle:  -angle,
			Offset: dvec3.T{half, 0, 0},
		}},
	}
}

func faceMaterials(slot int, w UVWindow, tex TextureAssignment) [FaceCount]MeshMaterial {
	var faces [FaceCount]MeshMaterial
	for i := range faces {
		faces[i] = NeutralMaterial()
	}
	faces[FACE_OUTER] = sideMaterial(SideOuter, slot, w, tex)
	faces[FACE_INNER] = sideMaterial(SideInner, slot, w.Mirror(), tex)
	return faces
}

func sideMaterial(side Side, slot int, w UVWindow, tex TextureAssignment) MeshMaterial {
	if t := tex.panel(side, slot); t != nil {
		return TexturedMaterial(NewPanelSlice(t))
	}
	if t := tex.spread(side); t != nil {
		return TexturedMaterial(NewSpreadSlice(t, w))
	}
	return NeutralMaterial()
}

// Build computes the panels and wraps them in an Assembly.
func Build(p Params) (*Assembly, error) {
	panels, err := ComputePanels(p)
	if err != nil {
		return nil, err
	}
	return &Assembly{Params: p, Panels: panels}, nil
}
