package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"scribe/internal/blobstore"
	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/report"
	"scribe/internal/runguard"
	"scribe/internal/staging"
	"scribe/internal/whisper"
	"scribe/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// runtime bundles everything a pipeline-invoking command needs.
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	runner   *workflow.Runner
	reporter report.Service
}

// buildRuntime assembles the full dependency graph from configuration
// and performs startup housekeeping: log retention and the stale
// staging sweep.
func (c *commandContext) buildRuntime() (*runtime, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}

	logging.CleanupOldLogs(logger, cfg.Paths.LogDir, "*.log", "scribe.log", cfg.Logging.RetentionDays)
	staging.CleanStale(logger, cfg.Paths.StagingDir, cfg.StaleLockWindow())

	store, err := blobstore.NewAzureStore(cfg.Storage.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("connect to blob storage: %w", err)
	}

	transcriber := whisper.NewService(whisper.Config{
		Model:       cfg.Whisper.Model,
		Device:      cfg.Whisper.Device,
		ComputeType: cfg.Whisper.ComputeType,
		BeamSize:    cfg.Whisper.BeamSize,
		ModelDir:    cfg.Whisper.ModelDir,
	})

	guard := runguard.New(
		runguard.NewFileStore(cfg.RunStatePath(), cfg.RunLockPath()),
		cfg.StaleLockWindow(),
		logger,
	)
	reporter := report.New(cfg, logger)

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		runner:   workflow.NewRunner(cfg, store, transcriber, guard, reporter, logger),
		reporter: reporter,
	}, nil
}
