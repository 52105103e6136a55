// Package main is the entry point for the volview volumetric viewer.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/carelight/volview/internal/config"
	"github.com/carelight/volview/internal/logger"
	"github.com/carelight/volview/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== volview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if cfg.Study.Manifest == "" {
		logger.Error("no study manifest given (use -manifest or the config file)")
		os.Exit(1)
	}

	v, err := viewer.New(cfg, logger.Log)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.LoadStudy(context.Background(), cfg.Study.Manifest); err != nil {
		logger.Error("failed to load study", zap.Error(err))
		os.Exit(1)
	}

	if err := v.Run(); err != nil {
		logger.Error("render loop error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
