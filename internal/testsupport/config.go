package testsupport

import (
	"path/filepath"
	"testing"

	"demosongs/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.YouTube.APIKey = "test"
	cfgVal.YouTube.BaseURL = "http://127.0.0.1:0"
	cfgVal.YouTube.RequestsPerSecond = 1000
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.OutputFile = filepath.Join(base, "out", "songs.txt")
	cfgVal.Paths.DebugDir = filepath.Join(base, "descriptions")
	cfgVal.Paths.LogDir = ""
	cfgVal.Cache.Path = filepath.Join(base, "data", "descriptions.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithYouTubeServer points the YouTube client at a test server.
func WithYouTubeServer(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YouTube.BaseURL = baseURL
	}
}

// WithChannels overrides the channel list.
func WithChannels(ids ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YouTube.ChannelIDs = append([]string(nil), ids...)
	}
}

// WithoutCache disables the description cache.
func WithoutCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Enabled = false
	}
}

// WithLogDir enables file logging under the temp directory.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
