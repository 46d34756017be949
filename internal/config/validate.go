package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if len(c.YouTube.ChannelIDs) == 0 {
		return errors.New("youtube.channel_ids must include at least one channel")
	}
	if c.YouTube.PageSize < 1 || c.YouTube.PageSize > maxPageSize {
		return fmt.Errorf("youtube.page_size must be between 1 and %d", maxPageSize)
	}
	if c.YouTube.RequestsPerSecond <= 0 {
		return errors.New("youtube.requests_per_second must be positive")
	}
	if c.YouTube.TimeoutSeconds <= 0 {
		return errors.New("youtube.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// RequireAPIKey reports a descriptive error when no YouTube API key is set.
// Only commands that talk to the API call it.
func (c *Config) RequireAPIKey() error {
	if c.YouTube.APIKey != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("youtube.api_key is required. Set YOUTUBE_API_KEY env var or edit %s (create with 'demosongs config init'), or pass --offline to use the description cache", defaultPath)
}
