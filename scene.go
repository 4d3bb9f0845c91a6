package brochure

import (
	dvec3 "github.com/flywave/go3d/float64/vec3"
)

type Camera struct {
	Position dvec3.T `json:"position"`
	Target   dvec3.T `json:"target"`
	Fov      float64 `json:"fov"`
}

type LightKind string

const (
	LightAmbient LightKind = "ambient"
	LightPoint   LightKind = "point"
	LightSpot    LightKind = "spot"
)

type Light struct {
	Kind       LightKind `json:"kind"`
	Position   dvec3.T   `json:"position"`
	Intensity  float64   `json:"intensity"`
	Angle      float64   `json:"angle,omitempty"`
	Penumbra   float64   `json:"penumbra,omitempty"`
	CastShadow bool      `json:"castShadow,omitempty"`
}

type ContactShadow struct {
	Y       float64 `json:"y"`
	Opacity float64 `json:"opacity"`
	Scale   float64 `json:"scale"`
	Blur    float64 `json:"blur"`
	Far     float64 `json:"far"`
}

type Grid struct {
	Y            float64 `json:"y"`
	CellSize     float64 `json:"cellSize"`
	SectionSize  float64 `json:"sectionSize"`
	FadeDistance float64 `json:"fadeDistance"`
	FadeStrength float64 `json:"fadeStrength"`
	SectionColor string  `json:"sectionColor"`
	CellColor    string  `json:"cellColor"`
	InfiniteGrid bool    `json:"infiniteGrid"`
}

type OrbitControls struct {
	EnablePan       bool    `json:"enablePan"`
	MinDistance     float64 `json:"minDistance"`
	MaxDistance     float64 `json:"maxDistance"`
	AutoRotate      bool    `json:"autoRotate"`
	AutoRotateSpeed float64 `json:"autoRotateSpeed"`
}

// Scene 渲染器需要的全部场景描述
type Scene struct {
	Config      Config        `json:"config"`
	Camera      Camera        `json:"camera"`
	Lights      []Light       `json:"lights"`
	Environment string        `json:"environment"`
	Shadow      ContactShadow `json:"shadow"`
	Grid        Grid          `json:"grid"`
	Controls    OrbitControls `json:"controls"`
	Assembly    *Assembly     `json:"assembly"`
}

func NewScene(cfg Config, asm *Assembly) *Scene {
	in := ClampLighting(cfg.Lighting)
	return &Scene{
		Config: cfg,
		Camera: Camera{Position: dvec3.T{0, 0, 4}, Fov: 45},
		Lights: []Light{
			{Kind: LightAmbient, Intensity: 0.5 * in},
			{Kind: LightPoint, Position: dvec3.T{10, 10, 10}, Intensity: in},
			{Kind: LightSpot, Position: dvec3.T{0, 5, 0}, Intensity: in, Angle: 0.15, Penumbra: 1, CastShadow: true},
		},
		Environment: "city",
		Shadow:      ContactShadow{Y: -1.2, Opacity: 0.4, Scale: 10, Blur: 2, Far: 4.5},
		Grid: Grid{
			Y:            -1.21,
			CellSize:     0.5,
			SectionSize:  2.5,
			FadeDistance: 10,
			FadeStrength: 5,
			SectionColor: "#e2e8f0",
			CellColor:    "#cbd5e1",
			InfiniteGrid: true,
		},
		Controls: OrbitControls{
			MinDistance:     2,
			MaxDistance:     10,
			AutoRotate:      cfg.AutoRotate,
			AutoRotateSpeed: 1,
		},
		Assembly: asm,
	}
}

func (s *Scene) Light(kind LightKind) (Light, bool) {
	for _, l := range s.Lights {
		if l.Kind == kind {
			return l, true
		}
	}
	return Light{}, false
}
