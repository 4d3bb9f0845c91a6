// Package main is the brochure configurator host: it folds the configured
// brochure, applies the uploaded images and writes the export files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/flywave/go-brochure/internal/config"
	"github.com/flywave/go-brochure/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Parse CLI flags
	flags := config.NewFlags(flag.NewFlagSet("brochure", flag.ContinueOnError))
	if err := flags.Parse(args); err != nil {
		return 2
	}

	// Load configuration
	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if path := flags.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			return 1
		}
		return 0
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== brochure ===",
		zap.String("type", cfg.Brochure.Type),
		zap.Strings("formats", cfg.Export.Formats),
		zap.String("dir", cfg.Export.Dir))
	logger.Debug("config loaded", zap.String("path", flags.ConfigPath()))

	a, err := newApp(cfg, logger.Named("app"))
	if err != nil {
		logger.Error("setup failed", zap.Error(err))
		return 1
	}
	if err := a.runOnce(); err != nil {
		logger.Error("export failed", zap.Error(err))
		return 1
	}
	if !cfg.Watch {
		return 0
	}

	if flags.ConfigPath() == "" {
		logger.Warn("watching texture files only, pass -config to reload settings")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.watch(ctx, flags); err != nil {
		logger.Error("watch failed", zap.Error(err))
		return 1
	}
	return 0
}
