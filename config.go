package brochure

import (
	"math"
	"strconv"
)

const MaxLighting = 2.0

// Config 宿主的全部界面参数, 值语义, 通过 With* 返回修改后的副本
type Config struct {
	Type         BrochureType  `json:"type"`
	Cover        CoverPosition `json:"cover"`
	Paper        PaperSize     `json:"paper"`
	Mode         UploadMode    `json:"mode"`
	FoldProgress float64       `json:"foldProgress"`
	Lighting     float64       `json:"lighting"`
	AutoRotate   bool          `json:"autoRotate"`
}

func DefaultConfig() Config {
	return Config{
		Type:         TrifoldC,
		Cover:        CoverRight,
		Paper:        PaperA4,
		Mode:         ModeSpread,
		FoldProgress: 0.5,
		Lighting:     1,
		AutoRotate:   false,
	}
}

func (c Config) WithType(t BrochureType) Config {
	c.Type = t
	return c
}

func (c Config) WithCover(cv CoverPosition) Config {
	c.Cover = cv
	return c
}

func (c Config) WithPaper(p PaperSize) Config {
	c.Paper = p
	return c
}

func (c Config) WithMode(m UploadMode) Config {
	c.Mode = m
	return c
}

func (c Config) WithFoldProgress(p float64) Config {
	c.FoldProgress = ClampProgress(p)
	return c
}

func (c Config) WithLighting(l float64) Config {
	c.Lighting = ClampLighting(l)
	return c
}

func (c Config) WithAutoRotate(on bool) Config {
	c.AutoRotate = on
	return c
}

func ClampLighting(l float64) float64 {
	switch {
	case math.IsNaN(l), l < 0:
		return 0
	case l > MaxLighting:
		return MaxLighting
	}
	return l
}

// Validate checks the enumerated fields; continuous values are clamped rather than rejected.
func (c Config) Validate() error {
	if !c.Type.Valid() {
		return &ConfigurationError{Field: "type", Value: string(c.Type)}
	}
	if !c.Cover.Valid() {
		return &ConfigurationError{Field: "cover", Value: string(c.Cover)}
	}
	if !c.Paper.Valid() {
		return &ConfigurationError{Field: "paper", Value: string(c.Paper)}
	}
	if !c.Mode.Valid() {
		return &ConfigurationError{Field: "mode", Value: string(c.Mode)}
	}
	if math.IsInf(c.Lighting, 0) {
		return &ConfigurationError{Field: "lighting", Value: strconv.FormatFloat(c.Lighting, 'g', -1, 64)}
	}
	return nil
}

func (c Config) PanelHeight() float64 {
	return c.Paper.Aspect()
}

// Params converts the config plus the uploaded textures into engine input.
func (c Config) Params(ts TextureSet) Params {
	return Params{
		Type:         c.Type,
		Cover:        c.Cover,
		FoldProgress: c.FoldProgress,
		PanelHeight:  c.PanelHeight(),
		Textures:     ts.Assignment(c.Mode),
	}
}
