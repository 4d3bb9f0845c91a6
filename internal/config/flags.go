package config

import (
	"flag"
	"strings"
)

// Flags holds the command-line overrides.
type Flags struct {
	fs *flag.FlagSet

	config      *string
	debug       *bool
	typ         *string
	cover       *string
	paper       *string
	mode        *string
	fold        *float64
	lighting    *float64
	autoRotate  *bool
	out         *string
	format      *string
	watch       *bool
	writeConfig *string
}

// NewFlags registers the brochure flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:          fs,
		config:      fs.String("config", "", "Path to config file"),
		debug:       fs.Bool("debug", false, "Enable debug logging"),
		typ:         fs.String("type", "", "Brochure type: bifold, trifold-c or trifold-z"),
		cover:       fs.String("cover", "", "Cover position: right or left"),
		paper:       fs.String("paper", "", "Paper size: a4, a5, b5 or square"),
		mode:        fs.String("mode", "", "Upload mode: spread or individual"),
		fold:        fs.Float64("fold", 0, "Fold progress in percent (0-100)"),
		lighting:    fs.Float64("lighting", 0, "Lighting intensity in percent (0-200)"),
		autoRotate:  fs.Bool("auto-rotate", false, "Enable camera auto-rotation"),
		out:         fs.String("out", "", "Export directory"),
		format:      fs.String("format", "", "Comma separated export formats: obj,glb"),
		watch:       fs.Bool("watch", false, "Re-export when the config or texture files change"),
		writeConfig: fs.String("write-config", "", "Write the effective config to this path and exit"),
	}
}

// Parse parses command-line arguments.
func (f *Flags) Parse(args []string) error {
	return f.fs.Parse(args)
}

// ConfigPath returns the explicit config path if provided via -config flag.
func (f *Flags) ConfigPath() string {
	return *f.config
}

// WriteConfigPath returns the -write-config target.
func (f *Flags) WriteConfigPath() string {
	return *f.writeConfig
}

// apply applies CLI flag overrides to the config. Only flags present on
// the command line override the file, so -fold 0 still means flat.
func (f *Flags) apply(cfg *Config) {
	set := make(map[string]bool)
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.typ != "" {
		cfg.Brochure.Type = *f.typ
	}
	if *f.cover != "" {
		cfg.Brochure.Cover = *f.cover
	}
	if *f.paper != "" {
		cfg.Brochure.Paper = *f.paper
	}
	if *f.mode != "" {
		cfg.Brochure.Mode = *f.mode
	}
	if set["fold"] {
		cfg.Brochure.FoldPercent = *f.fold
	}
	if set["lighting"] {
		cfg.Brochure.LightingPercent = *f.lighting
	}
	if set["auto-rotate"] {
		cfg.Brochure.AutoRotate = *f.autoRotate
	}
	if *f.out != "" {
		cfg.Export.Dir = *f.out
	}
	if *f.format != "" {
		cfg.Export.Formats = strings.Split(*f.format, ",")
	}
	if *f.watch {
		cfg.Watch = true
	}
}
