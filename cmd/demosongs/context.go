package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"demosongs/internal/catalog"
	"demosongs/internal/config"
	"demosongs/internal/descstore"
	"demosongs/internal/harvest"
	"demosongs/internal/logging"
)

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

type commandContext struct {
	flags *globalFlags

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.flags != nil {
			path = strings.TrimSpace(c.flags.configPath)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.flags != nil {
			if level := strings.TrimSpace(c.flags.logLevel); level != "" {
				cfg.Logging.Level = strings.ToLower(level)
			}
			if format := strings.TrimSpace(c.flags.logFormat); format != "" {
				cfg.Logging.Format = strings.ToLower(format)
			}
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
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

// openCache returns the description cache, or nil when caching is disabled. The returned close function is always safe to call.
func (c *commandContext) openCache() (*descstore.Store, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, func() {}, err
	}
	if !cfg.Cache.Enabled {
		return nil, func() {}, nil
	}
	store, err := descstore.Open(cfg.Cache.Path)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open description cache: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

func (c *commandContext) newSource(logger *slog.Logger) (catalog.Source, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}
	client, err := catalog.New(cfg.YouTube.APIKey, cfg.YouTube.BaseURL,
		catalog.WithPageSize(cfg.YouTube.PageSize),
		catalog.WithRateLimit(cfg.YouTube.RequestsPerSecond),
		catalog.WithTimeout(time.Duration(cfg.YouTube.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create youtube client: %w", err)
	}
	source, err := catalog.NewChannelSource(client, cfg.YouTube.ChannelIDs, cfg.YouTube.TitleMarker, logger)
	if err != nil {
		return nil, err
	}
	return source, nil
}

// withRunner builds a harvest.Runner for one command invocation. The network
// source is only created for online runs so --offline works without an API
// key.
func (c *commandContext) withRunner(offline bool, fn func(*harvest.Runner, *config.Config) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	store, closeStore, err := c.openCache()
	if err != nil {
		return err
	}
	defer closeStore()

	var cache harvest.Cache
	if store != nil {
		cache = store
	}
	if offline && cache == nil {
		return errors.New("--offline requires cache.enabled = true")
	}

	var source catalog.Source
	if !offline {
		source, err = c.newSource(logger)
		if err != nil {
			return err
		}
	}

	runner, err := harvest.NewRunner(cfg, source, cache, logger)
	if err != nil {
		return err
	}
	return fn(runner, cfg)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
