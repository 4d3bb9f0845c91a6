package brochure

import (
	"go.uber.org/zap"
)

// Session 宿主状态: 一个 Config 加一个 TextureSet, 每次修改都整体重算场景
type Session struct {
	cfg      Config
	textures TextureSet
	scene    *Scene
	logger   *zap.Logger
	export   ExportOptions
}

func NewSession(cfg Config, opts ...Option) (*Session, error) {
	o := newOptions(opts)
	s := &Session{logger: o.logger, export: o.export}
	if err := s.recompute(cfg, TextureSet{}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Config() Config {
	return s.cfg
}

func (s *Session) Textures() TextureSet {
	return s.textures
}

func (s *Session) Scene() *Scene {
	return s.scene
}

// Update replaces the config. On error the previous scene is kept.
func (s *Session) Update(cfg Config) error {
	return s.recompute(cfg, s.textures)
}

func (s *Session) SetTexture(slot Slot, tex *Texture) error {
	ts, err := s.textures.With(slot, tex)
	if err != nil {
		return err
	}
	return s.recompute(s.cfg, ts)
}

// Apply installs a finished upload. A failed upload reverts its slot to the
// neutral material and its error is returned after the scene is rebuilt.
func (s *Session) Apply(ev LoadEvent) error {
	if ev.Err != nil {
		s.logger.Warn("texture upload failed", zap.Stringer("slot", ev.Slot), zap.String("name", ev.Name), zap.Error(ev.Err))
		if err := s.SetTexture(ev.Slot, nil); err != nil {
			return err
		}
		return ev.Err
	}
	s.logger.Debug("texture upload applied", zap.Stringer("slot", ev.Slot), zap.String("name", ev.Name), zap.Uint64("seq", ev.Seq))
	return s.SetTexture(ev.Slot, ev.Texture)
}

func (s *Session) recompute(cfg Config, ts TextureSet) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.FoldProgress = ClampProgress(cfg.FoldProgress)
	cfg.Lighting = ClampLighting(cfg.Lighting)
	asm, err := Build(cfg.Params(ts))
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.textures = ts
	s.scene = NewScene(cfg, asm)
	s.logger.Debug("scene recomputed",
		zap.String("type", string(cfg.Type)),
		zap.String("cover", string(cfg.Cover)),
		zap.String("paper", string(cfg.Paper)),
		zap.String("mode", string(cfg.Mode)),
		zap.Float64("fold", cfg.FoldProgress),
		zap.Int("panels", asm.PanelCount()))
	return nil
}

func (s *Session) ExportOBJ() (*Bundle, error) {
	b, err := ExportOBJ(s.scene, s.export)
	if err == nil {
		s.logger.Info("exported obj", zap.String("name", s.export.Name), zap.Int("files", len(b.Artifacts)))
	}
	return b, err
}

func (s *Session) ExportGLB() (*Bundle, error) {
	b, err := ExportGLB(s.scene, s.export)
	if err == nil {
		s.logger.Info("exported glb", zap.String("name", s.export.Name), zap.Int("bytes", b.Size()))
	}
	return b, err
}
