package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	brochure "github.com/flywave/go-brochure"
	"github.com/flywave/go-brochure/internal/config"
)

type app struct {
	cfg     *config.Config
	session *brochure.Session
	log     *zap.Logger
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{log: log}
	if err := a.configure(cfg); err != nil {
		return nil, err
	}
	return a, nil
}

// configure replaces the session with one built from cfg, keeping the old
// one when cfg is rejected.
func (a *app) configure(cfg *config.Config) error {
	bc, err := cfg.ToBrochure()
	if err != nil {
		return err
	}
	s, err := brochure.NewSession(bc,
		brochure.WithLogger(a.log.Named("session")),
		brochure.WithExportOptions(cfg.ExportOptions()))
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.session = s
	return nil
}

// loadTextures decodes every configured image concurrently and applies them
// as they finish. A failed image leaves its slot neutral.
func (a *app) loadTextures() int {
	files := a.cfg.TextureFiles()
	if len(files) == 0 {
		return 0
	}
	loader := brochure.NewLoader(brochure.WithLogger(a.log.Named("loader")), brochure.WithEventBuffer(len(files)))
	defer loader.Close()
	for slot, path := range files {
		loader.LoadFile(slot, path)
	}
	failed := 0
	for i := 0; i < len(files); i++ {
		ev := <-loader.Events()
		if err := a.session.Apply(ev); err != nil {
			failed++
		}
	}
	return failed
}

func (a *app) export() error {
	dir := a.cfg.Export.Dir
	for _, f := range []string{"obj", "glb"} {
		if !a.cfg.HasFormat(f) {
			continue
		}
		var b *brochure.Bundle
		var err error
		if f == "obj" {
			b, err = a.session.ExportOBJ()
		} else {
			b, err = a.session.ExportGLB()
		}
		if err != nil {
			return err
		}
		if err := b.WriteDir(dir); err != nil {
			return err
		}
		for _, art := range b.Artifacts {
			a.log.Info("wrote", zap.String("file", filepath.Join(dir, art.Name)), zap.Int("bytes", len(art.Data)))
		}
	}
	return nil
}

func (a *app) runOnce() error {
	if n := a.loadTextures(); n > 0 {
		a.log.Warn("some textures failed to load", zap.Int("failed", n))
	}
	return a.export()
}

// watchedFiles returns the config file and every texture file.
func (a *app) watchedFiles(configPath string) map[string]bool {
	files := make(map[string]bool)
	if configPath != "" {
		files[filepath.Clean(configPath)] = true
	}
	for _, p := range a.cfg.TextureFiles() {
		files[filepath.Clean(p)] = true
	}
	return files
}

// watch re-exports whenever the config or a texture file changes. Editors
// often replace files instead of writing them, so the parent directories are
// watched and events are filtered by name.
func (a *app) watch(ctx context.Context, flags *config.Flags) error {
	configPath := flags.ConfigPath()
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	files := a.watchedFiles(configPath)
	dirs := make(map[string]bool)
	for f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}
	a.log.Info("watching for changes", zap.Int("files", len(files)))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watcher error", zap.Error(err))
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(event.Name)
			if !files[name] || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if configPath != "" && name == filepath.Clean(configPath) {
				cfg, err := config.Load(flags)
				if err != nil {
					a.log.Warn("config reload failed", zap.Error(err))
					continue
				}
				if err := a.configure(cfg); err != nil {
					a.log.Warn("config rejected", zap.Error(err))
					continue
				}
				files = a.watchedFiles(configPath)
			}
			a.log.Info("change detected", zap.String("file", name))
			if err := a.runOnce(); err != nil {
				a.log.Error("export failed", zap.Error(err))
			}
		}
	}
}
