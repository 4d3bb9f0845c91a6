package brochure

import (
	"math"

	dmat "github.com/flywave/go3d/float64/mat4"
	dvec3 "github.com/flywave/go3d/float64/vec3"
	"github.com/flywave/go3d/float64/vec4"
)

// Transform 平移加绕 +Y 轴的旋转, 即 T(Translation) * Ry(Yaw)
type Transform struct {
	Translation dvec3.T `json:"translation"`
	Yaw         float64 `json:"yaw"`
}

var IdentTransform = Transform{}

func Translation(x, y, z float64) Transform {
	return Transform{Translation: dvec3.T{x, y, z}}
}

func RotationY(angle float64) Transform {
	return Transform{Yaw: angle}
}

// rotateY rotates v around +Y by angle using the right-handed convention.
func rotateY(v dvec3.T, angle float64) dvec3.T {
	if angle == 0 {
		return v
	}
	s, c := math.Sincos(angle)
	return dvec3.T{
		v[0]*c + v[2]*s,
		v[1],
		-v[0]*s + v[2]*c,
	}
}

// Mul returns t * o: o is applied first, then t.
func (t Transform) Mul(o Transform) Transform {
	r := rotateY(o.Translation, t.Yaw)
	return Transform{
		Translation: dvec3.Add(&t.Translation, &r),
		Yaw:         t.Yaw + o.Yaw,
	}
}

func (t Transform) Apply(p dvec3.T) dvec3.T {
	r := rotateY(p, t.Yaw)
	return dvec3.Add(&t.Translation, &r)
}

func (t Transform) ApplyNormal(n dvec3.T) dvec3.T {
	return rotateY(n, t.Yaw)
}

// Mirror reflects the transform through the YZ plane.
func (t Transform) Mirror() Transform {
	return Transform{
		Translation: dvec3.T{-t.Translation[0], t.Translation[1], t.Translation[2]},
		Yaw:         -t.Yaw,
	}
}

// Matrix 返回列主序的 4x4 矩阵
func (t Transform) Matrix() *dmat.T {
	s, c := math.Sincos(t.Yaw)
	m := &dmat.T{}
	m[0] = vec4.T{c, 0, -s, 0}
	m[1] = vec4.T{0, 1, 0, 0}
	m[2] = vec4.T{s, 0, c, 0}
	m[3] = vec4.T{t.Translation[0], t.Translation[1], t.Translation[2], 1}
	return m
}

// Quaternion 返回 glTF 使用的 (x, y, z, w) 四元数
func (t Transform) Quaternion() [4]float64 {
	s, c := math.Sincos(t.Yaw / 2)
	return [4]float64{0, s, 0, c}
}
