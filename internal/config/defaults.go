package config

const (
	defaultConfigPath        = "~/.config/demosongs/config.toml"
	projectConfigName        = "demosongs.toml"
	defaultYouTubeBaseURL    = "https://www.googleapis.com/youtube/v3"
	defaultTitleMarker       = "[SOUND DEMO]"
	defaultPageSize          = 50
	maxPageSize              = 50
	defaultRequestsPerSecond = 5
	defaultTimeoutSeconds    = 30
	defaultDataDir           = "~/.local/share/demosongs"
	defaultOutputFile        = "songs.txt"
	defaultDebugDir          = "descriptions"
	defaultCacheFileName     = "descriptions.db"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// defaultChannelIDs are the two channels whose sound demos are harvested, in
// the order their descriptions are concatenated.
var defaultChannelIDs = []string{
	"UC3XdYJjWliOdKuZMNaTiP8Q",
	"UCOtI5JChjkQVYRWAbqRhNeQ",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		YouTube: YouTube{
			BaseURL:           defaultYouTubeBaseURL,
			ChannelIDs:        append([]string(nil), defaultChannelIDs...),
			TitleMarker:       defaultTitleMarker,
			PageSize:          defaultPageSize,
			RequestsPerSecond: defaultRequestsPerSecond,
			TimeoutSeconds:    defaultTimeoutSeconds,
		},
		Paths: Paths{
			DataDir:    defaultDataDir,
			OutputFile: defaultOutputFile,
			DebugDir:   defaultDebugDir,
		},
		Cache: Cache{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
