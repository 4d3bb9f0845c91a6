package brochure

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func params(t BrochureType, cover CoverPosition, p float64) Params {
	return Params{Type: t, Cover: cover, FoldProgress: p, PanelHeight: DefaultPanelHeight}
}

func mustPanels(t *testing.T, p Params) []Panel {
	t.Helper()
	panels, err := ComputePanels(p)
	require.NoError(t, err)
	return panels
}

func testTexture(t *testing.T, name string) *Texture {
	t.Helper()
	tex, err := CreateTextureFromImage(image.NewNRGBA(image.Rect(0, 0, 4, 2)), name, false)
	require.NoError(t, err)
	return tex
}

func worldOf(t *testing.T, panels []Panel, i int) Transform {
	t.Helper()
	asm := &Assembly{Panels: panels}
	w, err := asm.World(i)
	require.NoError(t, err)
	return w
}

func assertWindow(t *testing.T, want, got UVWindow) {
	t.Helper()
	assert.InDelta(t, want.Start, got.Start, eps)
	assert.InDelta(t, want.End, got.End, eps)
}

func TestPanelCount(t *testing.T) {
	tests := []struct {
		typ  BrochureType
		want int
	}{
		{Bifold, 2},
		{TrifoldC, 3},
		{TrifoldZ, 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			panels := mustPanels(t, params(tt.typ, CoverRight, 0.3))
			assert.Len(t, panels, tt.want)
			assert.Equal(t, tt.want, PanelCount(tt.typ))
			for i, p := range panels {
				assert.Equal(t, i, p.Slot)
			}
		})
	}
}

func TestBifoldFlat(t *testing.T) {
	panels := mustPanels(t, params(Bifold, CoverRight, 0))
	require.Len(t, panels, 2)

	assert.Equal(t, UVWindow{0, 0.5}, panels[0].Window)
	assert.Equal(t, UVWindow{0.5, 1}, panels[1].Window)
	assert.Equal(t, -1, panels[0].Parent)
	assert.Equal(t, 0, panels[1].Parent)
	assert.Equal(t, 0.0, panels[1].Hinge.Angle)

	for i := range panels {
		w := worldOf(t, panels, i)
		assert.InDelta(t, 0, w.Yaw, eps)
		assert.InDelta(t, 0, w.Translation[2], eps)
	}
	w0 := worldOf(t, panels, 0)
	w1 := worldOf(t, panels, 1)
	assert.InDelta(t, PanelWidth, w1.Translation[0]-w0.Translation[0], eps)
}

func TestBifoldClosed(t *testing.T) {
	panels := mustPanels(t, params(Bifold, CoverRight, 1))
	wing := panels[1]
	assert.InDelta(t, 0.95*math.Pi, math.Abs(wing.Hinge.Angle), eps)
	assert.InDelta(t, 171, wing.Hinge.Magnitude()*180/math.Pi, 0.5)

	// the wing's free edge ends up just behind the anchor's far edge
	w := worldOf(t, panels, 1)
	edge := w.Apply([3]float64{PanelWidth / 2, 0, 0})
	anchor := worldOf(t, panels, 0)
	far := anchor.Apply([3]float64{-PanelWidth / 2, 0, 0})
	assert.InDelta(t, far[0], edge[0], 0.02)
	assert.Less(t, edge[2], 0.0)
}

func TestTrifoldSigns(t *testing.T) {
	tests := []struct {
		name string
		typ  BrochureType
		same bool
	}{
		{"roll", TrifoldC, true},
		{"zfold", TrifoldZ, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panels := mustPanels(t, params(tt.typ, CoverRight, 0.5))
			require.Len(t, panels, 3)
			centre := panels[1]
			assert.Equal(t, -1, centre.Parent)
			assert.Equal(t, RoleAnchor, centre.Role)
			assert.Equal(t, IdentTransform, centre.Local)

			left, right := panels[0].Hinge.Fold(), panels[2].Hinge.Fold()
			assert.InDelta(t, 0.49*math.Pi, math.Abs(left), eps)
			assert.InDelta(t, 0.49*math.Pi, math.Abs(right), eps)
			assert.Equal(t, tt.same, math.Signbit(left) == math.Signbit(right))
			assert.Greater(t, right, 0.0)
		})
	}
}

func TestTrifoldIgnoresCover(t *testing.T) {
	for _, typ := range []BrochureType{TrifoldC, TrifoldZ} {
		r := mustPanels(t, params(typ, CoverRight, 0.7))
		l := mustPanels(t, params(typ, CoverLeft, 0.7))
		assert.Equal(t, r, l)
	}
}

func TestAngleMonotonic(t *testing.T) {
	for _, typ := range []BrochureType{Bifold, TrifoldC, TrifoldZ} {
		t.Run(string(typ), func(t *testing.T) {
			assert.Equal(t, 0.0, HingeAngle(typ, 0))
			assert.InDelta(t, MaxFoldAngle(typ), HingeAngle(typ, 1), eps)
			prev := -1.0
			for i := 0; i <= 100; i++ {
				a := HingeAngle(typ, float64(i)/100)
				assert.GreaterOrEqual(t, a, prev)
				prev = a
			}
		})
	}
}

func TestFoldProgressClamped(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{1.5, 1},
		{math.NaN(), 0},
		{math.Inf(1), 1},
		{0.25, 0.25},
	}
	for _, tt := range tests {
		got := mustPanels(t, params(TrifoldC, CoverRight, tt.in))
		want := mustPanels(t, params(TrifoldC, CoverRight, tt.want))
		assert.Equal(t, want, got)
	}
}

func TestConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"type", Params{Type: "quadfold", Cover: CoverRight, PanelHeight: 1}},
		{"cover", Params{Type: Bifold, Cover: "top", PanelHeight: 1}},
		{"zero height", Params{Type: Bifold, Cover: CoverRight}},
		{"nan height", Params{Type: Bifold, Cover: CoverRight, PanelHeight: math.NaN()}},
		{"inf height", Params{Type: Bifold, Cover: CoverRight, PanelHeight: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panels, err := ComputePanels(tt.p)
			assert.Nil(t, panels)
			var ce *ConfigurationError
			assert.True(t, errors.As(err, &ce))
		})
	}
}

func TestTiling(t *testing.T) {
	for _, typ := range []BrochureType{Bifold, TrifoldC, TrifoldZ} {
		for _, cover := range []CoverPosition{CoverRight, CoverLeft} {
			asm, err := Build(params(typ, cover, 0.4))
			require.NoError(t, err)
			assert.NoError(t, asm.CheckTiling())
		}
	}
}

func TestMirrorLaw(t *testing.T) {
	ts := TextureSet{Outer: testTexture(t, "outer.png"), Inner: testTexture(t, "inner.png")}
	for _, typ := range []BrochureType{Bifold, TrifoldC, TrifoldZ} {
		p := params(typ, CoverRight, 0.2)
		p.Textures = ts.Assignment(ModeSpread)
		for _, pn := range mustPanels(t, p) {
			outer := pn.Outer().GetTexture()
			inner := pn.Inner().GetTexture()
			require.NotNil(t, outer)
			require.NotNil(t, inner)
			assertWindow(t, pn.Window, outer.Window())
			assertWindow(t, pn.Window.Mirror(), inner.Window())
			assertWindow(t, pn.InnerWindow(), inner.Window())
		}
	}
}

func TestCoverInvolution(t *testing.T) {
	for _, p := range []float64{0, 0.3, 0.5, 1} {
		right := mustPanels(t, params(Bifold, CoverRight, p))
		left := mustPanels(t, params(Bifold, CoverLeft, p))
		n := len(right)
		for i := range right {
			rw := worldOf(t, right, i).Mirror()
			lw := worldOf(t, left, n-1-i)
			assert.InDelta(t, rw.Yaw, lw.Yaw, eps)
			for k := 0; k < 3; k++ {
				assert.InDelta(t, rw.Translation[k], lw.Translation[k], eps)
			}
			assert.Equal(t, right[i].Hinge.Fold(), left[n-1-i].Hinge.Fold())
		}
		assert.Equal(t, UVWindow{0, 0.5}, left[0].Window)
		assert.Equal(t, UVWindow{0.5, 1}, left[1].Window)
		assert.Equal(t, 1, left[0].Parent)
		assert.Equal(t, -1, left[1].Parent)
	}
}

func TestOverrideIndependence(t *testing.T) {
	ts := TextureSet{Outer: testTexture(t, "outer.png")}
	ts.OuterPanels[1] = testTexture(t, "panel1.png")
	p := params(TrifoldC, CoverRight, 0.5)
	p.Textures = TextureAssignment{Outer: ts.Outer, OuterPanels: ts.OuterPanels[:]}

	panels := mustPanels(t, p)
	assert.Same(t, ts.OuterPanels[1], panels[1].Outer().GetTexture().Texture)
	assert.Equal(t, SourcePanel, panels[1].Outer().GetTexture().Source)
	assert.Equal(t, FullWindow, panels[1].Outer().GetTexture().Window())
	for _, i := range []int{0, 2} {
		slice := panels[i].Outer().GetTexture()
		assert.Same(t, ts.Outer, slice.Texture)
		assertWindow(t, panels[i].Window, slice.Window())
	}
}

func TestIndividualModeIgnoresSpread(t *testing.T) {
	ts := TextureSet{Outer: testTexture(t, "outer.png")}
	cfg := DefaultConfig().WithMode(ModeIndividual)
	for _, pn := range mustPanels(t, cfg.Params(ts)) {
		for f := 0; f < FaceCount; f++ {
			assert.False(t, pn.Faces[f].HasTexture())
		}
	}
}

func TestSideFacesNeutral(t *testing.T) {
	ts := TextureSet{Outer: testTexture(t, "outer.png"), Inner: testTexture(t, "inner.png")}
	p := params(Bifold, CoverLeft, 0.5)
	p.Textures = ts.Assignment(ModeSpread)
	for _, pn := range mustPanels(t, p) {
		for f := FACE_POS_X; f <= FACE_NEG_Y; f++ {
			assert.False(t, pn.Faces[f].HasTexture())
			assert.Equal(t, PaperWhite, pn.Faces[f].GetColor())
			assert.Equal(t, float32(PaperRoughness), roughnessOf(pn.Faces[f]))
		}
	}
}

func TestIdempotent(t *testing.T) {
	ts := TextureSet{Outer: testTexture(t, "outer.png")}
	p := params(TrifoldZ, CoverLeft, 0.63)
	p.Textures = ts.Assignment(ModeSpread)
	a := mustPanels(t, p)
	b := mustPanels(t, p)
	assert.Equal(t, a, b)
}

func TestPanelSize(t *testing.T) {
	p := params(Bifold, CoverRight, 0)
	p.PanelHeight = PaperSquare.Aspect()
	for _, pn := range mustPanels(t, p) {
		assert.Equal(t, [3]float64{PanelWidth, 1, Thickness}, [3]float64(pn.Size))
	}
}
