package brochure

import (
	"math"
	"testing"

	dvec3 "github.com/flywave/go3d/float64/vec3"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got dvec3.T) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], eps, "component %d", i)
	}
}

func TestRotateY(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		in    dvec3.T
		want  dvec3.T
	}{
		{"zero", 0, dvec3.T{1, 2, 3}, dvec3.T{1, 2, 3}},
		{"quarter x", math.Pi / 2, dvec3.T{1, 0, 0}, dvec3.T{0, 0, -1}},
		{"quarter z", math.Pi / 2, dvec3.T{0, 0, 1}, dvec3.T{1, 0, 0}},
		{"half", math.Pi, dvec3.T{1, 5, 0}, dvec3.T{-1, 5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, tt.want, RotationY(tt.angle).Apply(tt.in))
		})
	}
}

func TestTransformMul(t *testing.T) {
	a := Translation(1, 0, 0).Mul(RotationY(math.Pi / 2))
	b := Translation(2, 0, 0)
	ab := a.Mul(b)
	p := dvec3.T{0.5, 1, 0}
	assertVec(t, a.Apply(b.Apply(p)), ab.Apply(p))
	assertVec(t, dvec3.T{1, 0, -2}, ab.Translation)
	assert.InDelta(t, math.Pi/2, ab.Yaw, eps)
}

func TestTransformMatrixMatchesApply(t *testing.T) {
	tr := Transform{Translation: dvec3.T{0.3, -1, 2}, Yaw: 0.7}
	m := tr.Matrix()
	p := dvec3.T{1, 2, 3}
	got := dvec3.T{
		m[0][0]*p[0] + m[1][0]*p[1] + m[2][0]*p[2] + m[3][0],
		m[0][1]*p[0] + m[1][1]*p[1] + m[2][1]*p[2] + m[3][1],
		m[0][2]*p[0] + m[1][2]*p[1] + m[2][2]*p[2] + m[3][2],
	}
	assertVec(t, tr.Apply(p), got)
}

func TestTransformQuaternion(t *testing.T) {
	q := RotationY(math.Pi / 2).Quaternion()
	assert.InDelta(t, 0, q[0], eps)
	assert.InDelta(t, math.Sqrt2/2, q[1], eps)
	assert.InDelta(t, 0, q[2], eps)
	assert.InDelta(t, math.Sqrt2/2, q[3], eps)
	assert.Equal(t, [4]float64{0, 0, 0, 1}, IdentTransform.Quaternion())
}

func TestTransformMirror(t *testing.T) {
	tr := Transform{Translation: dvec3.T{0.4, 0.1, -0.2}, Yaw: 0.3}
	p := dvec3.T{0.25, 0.5, 0.1}
	mp := dvec3.T{-p[0], p[1], p[2]}
	want := tr.Apply(p)
	got := tr.Mirror().Apply(mp)
	assertVec(t, dvec3.T{-want[0], want[1], want[2]}, got)
	assert.Equal(t, tr, tr.Mirror().Mirror())
}

func TestHingeTransform(t *testing.T) {
	h := Hinge{Pivot: dvec3.T{0.5, 0, 0}, Angle: math.Pi / 2, Offset: dvec3.T{0.5, 0, 0}}
	tr := h.Transform()
	assertVec(t, dvec3.T{0.5, 0, -0.5}, tr.Translation)
	// the edge on the hinge line stays put
	assertVec(t, dvec3.T{0.5, 0, 0}, tr.Apply(dvec3.T{-0.5, 0, 0}))
	assert.InDelta(t, -math.Pi/2, h.Fold(), eps)
	assert.Equal(t, 0.0, Hinge{}.Fold())
}
