package brochure

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestSession(t *testing.T) (*Session, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	s, err := NewSession(DefaultConfig(), WithLogger(zap.New(core)))
	if err != nil {
		t.Fatal(err)
	}
	return s, logs
}

func TestSessionUpdate(t *testing.T) {
	s, _ := newTestSession(t)
	if n := s.Scene().Assembly.PanelCount(); n != 3 {
		t.Fatalf("Expected 3 panels, got %d", n)
	}
	if err := s.Update(s.Config().WithType(Bifold)); err != nil {
		t.Fatal(err)
	}
	if n := s.Scene().Assembly.PanelCount(); n != 2 {
		t.Errorf("Expected 2 panels, got %d", n)
	}
}

func TestSessionUpdateKeepsSceneOnError(t *testing.T) {
	s, _ := newTestSession(t)
	before := s.Scene()
	err := s.Update(s.Config().WithType("quadfold"))
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
	if s.Scene() != before {
		t.Error("Expected previous scene to be kept")
	}
	if s.Config().Type != TrifoldC {
		t.Errorf("Expected config unchanged, got %s", s.Config().Type)
	}
}

func TestSessionSpreadThenIndividual(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.SetTexture(SpreadSlot(SideOuter), testTexture(t, "spread.png")); err != nil {
		t.Fatal(err)
	}
	if !s.Scene().Assembly.Panels[0].Outer().HasTexture() {
		t.Fatal("Expected spread image on panel 0")
	}
	if err := s.Update(s.Config().WithMode(ModeIndividual)); err != nil {
		t.Fatal(err)
	}
	for _, p := range s.Scene().Assembly.Panels {
		if p.Outer().HasTexture() || p.Inner().HasTexture() {
			t.Errorf("panel %d: Expected neutral material in individual mode", p.Slot)
		}
	}
	// the spread upload survives the mode switch
	if s.Textures().Outer == nil {
		t.Error("Expected spread texture to be kept")
	}
}

func TestSessionApplyFailure(t *testing.T) {
	s, logs := newTestSession(t)
	slot := SpreadSlot(SideOuter)
	if err := s.Apply(LoadEvent{Slot: slot, Seq: 1, Texture: testTexture(t, "a.png")}); err != nil {
		t.Fatal(err)
	}
	loadErr := &AssetLoadError{Slot: slot, Name: "b.png", Err: ErrUnsupportedFormat}
	err := s.Apply(LoadEvent{Slot: slot, Seq: 2, Name: "b.png", Err: loadErr})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected load error, got %v", err)
	}
	if s.Textures().Outer != nil {
		t.Error("Expected failed slot to revert to neutral")
	}
	if n := logs.FilterMessage("texture upload failed").Len(); n != 1 {
		t.Errorf("Expected 1 warning, got %d", n)
	}
}

func TestSessionExport(t *testing.T) {
	s, logs := newTestSession(t)
	b, err := s.ExportOBJ()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Get(ExportName + ".obj"); !ok {
		t.Error("Expected obj artifact")
	}
	if _, err := s.ExportGLB(); err != nil {
		t.Fatal(err)
	}
	if n := logs.FilterMessageSnippet("exported").Len(); n != 2 {
		t.Errorf("Expected 2 export logs, got %d", n)
	}
}
