package brochure

import "testing"

func TestNewScene(t *testing.T) {
	cfg := DefaultConfig().WithLighting(1.5).WithAutoRotate(true)
	asm, err := Build(cfg.Params(TextureSet{}))
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene(cfg, asm)

	if s.Camera.Position[2] != 4 || s.Camera.Fov != 45 {
		t.Errorf("unexpected camera %+v", s.Camera)
	}
	tests := []struct {
		kind      LightKind
		intensity float64
	}{
		{LightAmbient, 0.75},
		{LightPoint, 1.5},
		{LightSpot, 1.5},
	}
	for _, tt := range tests {
		l, ok := s.Light(tt.kind)
		if !ok {
			t.Fatalf("missing %s light", tt.kind)
		}
		if l.Intensity != tt.intensity {
			t.Errorf("Expected %s intensity %g, got %g", tt.kind, tt.intensity, l.Intensity)
		}
	}
	if spot, _ := s.Light(LightSpot); !spot.CastShadow || spot.Angle != 0.15 || spot.Penumbra != 1 {
		t.Errorf("unexpected spot light %+v", spot)
	}
	if !s.Controls.AutoRotate || s.Controls.EnablePan || s.Controls.MinDistance != 2 || s.Controls.MaxDistance != 10 {
		t.Errorf("unexpected controls %+v", s.Controls)
	}
	if s.Grid.Y >= s.Shadow.Y {
		t.Errorf("Expected grid below contact shadow, got %g >= %g", s.Grid.Y, s.Shadow.Y)
	}
	if s.Environment != "city" {
		t.Errorf("Expected city environment, got %s", s.Environment)
	}
	if s.Assembly != asm {
		t.Error("Expected scene to carry the assembly")
	}
}

func TestSceneLightingClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lighting = 9
	s := NewScene(cfg, nil)
	if l, _ := s.Light(LightPoint); l.Intensity != MaxLighting {
		t.Errorf("Expected intensity %g, got %g", MaxLighting, l.Intensity)
	}
}
