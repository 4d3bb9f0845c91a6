// Package config handles brochure configuration loading and management.
package config

import (
	brochure "github.com/flywave/go-brochure"
)

// Config holds all host settings.
type Config struct {
	Brochure BrochureConfig `yaml:"brochure"`
	Textures TexturesConfig `yaml:"textures"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
	Watch    bool           `yaml:"watch"`
}

// BrochureConfig holds the fold parameters shown in the sidebar.
type BrochureConfig struct {
	Type            string  `yaml:"type" validate:"oneof=bifold trifold-c trifold-z"`
	Cover           string  `yaml:"cover" validate:"oneof=right left"`
	Paper           string  `yaml:"paper" validate:"oneof=a4 a5 b5 square"`
	Mode            string  `yaml:"mode" validate:"oneof=spread individual"`
	// Percentages are clamped by ToBrochure, not rejected.
	FoldPercent     float64 `yaml:"fold_percent"`
	LightingPercent float64 `yaml:"lighting_percent"`
	AutoRotate      bool    `yaml:"auto_rotate"`
}

// TexturesConfig holds image file paths; empty entries stay neutral.
type TexturesConfig struct {
	Outer       string   `yaml:"outer"`
	Inner       string   `yaml:"inner"`
	OuterPanels []string `yaml:"outer_panels" validate:"max=3"`
	InnerPanels []string `yaml:"inner_panels" validate:"max=3"`
}

// ExportConfig holds export destination settings.
type ExportConfig struct {
	Dir           string   `yaml:"dir" validate:"required"`
	Name          string   `yaml:"name" validate:"required"`
	Formats       []string `yaml:"formats" validate:"min=1,dive,oneof=obj glb"`
	TextureFormat string   `yaml:"texture_format" validate:"oneof=png jpeg webp"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" validate:"oneof=debug info warn error"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Brochure: BrochureConfig{
			Type:            string(brochure.TrifoldC),
			Cover:           string(brochure.CoverRight),
			Paper:           string(brochure.PaperA4),
			Mode:            string(brochure.ModeSpread),
			FoldPercent:     50,
			LightingPercent: 100,
			AutoRotate:      false,
		},
		Export: ExportConfig{
			Dir:           ".",
			Name:          brochure.ExportName,
			Formats:       []string{"obj"},
			TextureFormat: string(brochure.TexturePNG),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ToBrochure converts the sidebar settings into the engine's config.
func (c *Config) ToBrochure() (brochure.Config, error) {
	b := c.Brochure
	t, err := brochure.ParseBrochureType(b.Type)
	if err != nil {
		return brochure.Config{}, err
	}
	cover, err := brochure.ParseCoverPosition(b.Cover)
	if err != nil {
		return brochure.Config{}, err
	}
	paper, err := brochure.ParsePaperSize(b.Paper)
	if err != nil {
		return brochure.Config{}, err
	}
	mode, err := brochure.ParseUploadMode(b.Mode)
	if err != nil {
		return brochure.Config{}, err
	}
	return brochure.DefaultConfig().
		WithType(t).
		WithCover(cover).
		WithPaper(paper).
		WithMode(mode).
		WithFoldProgress(b.FoldPercent / 100).
		WithLighting(b.LightingPercent / 100).
		WithAutoRotate(b.AutoRotate), nil
}

// ExportOptions returns the library export options.
func (c *Config) ExportOptions() brochure.ExportOptions {
	return brochure.ExportOptions{
		Name:          c.Export.Name,
		TextureFormat: brochure.TextureFormat(c.Export.TextureFormat),
	}
}

// TextureFiles lists every configured image with the slot it fills.
func (c *Config) TextureFiles() map[brochure.Slot]string {
	files := make(map[brochure.Slot]string)
	if c.Textures.Outer != "" {
		files[brochure.SpreadSlot(brochure.SideOuter)] = c.Textures.Outer
	}
	if c.Textures.Inner != "" {
		files[brochure.SpreadSlot(brochure.SideInner)] = c.Textures.Inner
	}
	for i, p := range c.Textures.OuterPanels {
		if p != "" {
			files[brochure.PanelSlot(brochure.SideOuter, i)] = p
		}
	}
	for i, p := range c.Textures.InnerPanels {
		if p != "" {
			files[brochure.PanelSlot(brochure.SideInner, i)] = p
		}
	}
	return files
}

// HasFormat reports whether the export formats include f.
func (c *Config) HasFormat(f string) bool {
	for _, x := range c.Export.Formats {
		if x == f {
			return true
		}
	}
	return false
}
