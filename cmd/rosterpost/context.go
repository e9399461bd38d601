package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"rosterpost/internal/archive"
	"rosterpost/internal/config"
	"rosterpost/internal/extract"
	"rosterpost/internal/logging"
	"rosterpost/internal/mugshots"
	"rosterpost/internal/publish"
	"rosterpost/internal/queue"
	"rosterpost/internal/roster"
	"rosterpost/internal/visiongate"
	"rosterpost/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
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

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// queueStore opens the snapshot store for read-oriented commands.
func (c *commandContext) queueStore() (*queue.Store, *config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	return queue.NewStore(cfg.QueuePath(), loc, logger), cfg, nil
}

// openArchive returns the scrape-history store, or nil when disabled.
func (c *commandContext) openArchive(cfg *config.Config) (*archive.Store, error) {
	if !cfg.Archive.Enabled {
		return nil, nil
	}
	store, err := archive.Open(cfg.ArchivePath())
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return store, nil
}

// orchestrator wires the full pipeline for scrape and post commands.
// testMode swaps the real publisher for the logging stub.
func (c *commandContext) orchestrator(testMode bool) (*workflow.Orchestrator, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	archiveStore, err := c.openArchive(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if archiveStore != nil {
			_ = archiveStore.Close()
		}
	}

	mugshotStore := mugshots.New(cfg.Paths.MugshotDir)

	var publisher publish.Publisher
	if testMode {
		publisher = publish.NewTestMode(logger)
	} else {
		publisher = publish.NewClient(cfg.Posting, logger)
	}

	orchestrator, err := workflow.New(workflow.Deps{
		Config:    cfg,
		Logger:    logger,
		Source:    roster.NewClient(cfg.Roster, logger),
		Extractor: extract.NewExtractor(mugshotStore, cfg.Roster.ChargeScanWindow, logger),
		Queue:     queue.NewStore(cfg.QueuePath(), loc, logger),
		Mugshots:  mugshotStore,
		Archive:   archiveStore,
		Gate:      visiongate.FromConfig(cfg.Vision, logger),
		Publisher: publisher,
		Now:       time.Now,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return orchestrator, cleanup, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
