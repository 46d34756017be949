package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeYouTube()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeYouTube() {
	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	if c.YouTube.APIKey == "" {
		if value, ok := os.LookupEnv("YOUTUBE_API_KEY"); ok {
			c.YouTube.APIKey = strings.TrimSpace(value)
		}
	}
	c.YouTube.BaseURL = strings.TrimRight(strings.TrimSpace(c.YouTube.BaseURL), "/")
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = defaultYouTubeBaseURL
	}

	ids := make([]string, 0, len(c.YouTube.ChannelIDs))
	seen := make(map[string]struct{}, len(c.YouTube.ChannelIDs))
	for _, id := range c.YouTube.ChannelIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	c.YouTube.ChannelIDs = ids

	if c.YouTube.PageSize <= 0 {
		c.YouTube.PageSize = defaultPageSize
	}
	if c.YouTube.RequestsPerSecond == 0 {
		c.YouTube.RequestsPerSecond = defaultRequestsPerSecond
	}
	if c.YouTube.TimeoutSeconds == 0 {
		c.YouTube.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputFile) == "" {
		c.Paths.OutputFile = defaultOutputFile
	}
	if c.Paths.OutputFile, err = expandPath(c.Paths.OutputFile); err != nil {
		return fmt.Errorf("paths.output_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.DebugDir) == "" {
		c.Paths.DebugDir = defaultDebugDir
	}
	if c.Paths.DebugDir, err = expandPath(c.Paths.DebugDir); err != nil {
		return fmt.Errorf("paths.debug_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCache() error {
	var err error
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = filepath.Join(c.Paths.DataDir, defaultCacheFileName)
	}
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
