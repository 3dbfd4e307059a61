package config

const (
	defaultConfigPath        = "~/.config/ytharvest/config.toml"
	defaultStateDir          = "~/.local/share/ytharvest"
	defaultRootCount         = 80
	defaultMaxComments       = 20000
	defaultSort              = "popularity"
	defaultFormat            = "txt"
	defaultOutputDir         = "."
	defaultWorkers           = 5
	defaultKeywordCount      = 10
	defaultYtDlpBinary       = "yt-dlp"
	defaultPageSize          = 100
	defaultRequestsPerSecond = 2
	defaultTimeoutSeconds    = 0
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"

	// maxWorkers bounds bulk concurrency so a typo cannot hammer the provider.
	maxWorkers = 32
)

// Formats lists the accepted output formats.
var Formats = []string{"txt", "json", "csv"}

// SortModes lists the accepted root orderings.
var SortModes = []string{"popularity", "chronological"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Comments: Comments{
			RootCount:   defaultRootCount,
			MaxComments: defaultMaxComments,
			Sort:        defaultSort,
		},
		Output: Output{
			Format: defaultFormat,
			Dir:    defaultOutputDir,
		},
		Bulk: Bulk{
			Workers: defaultWorkers,
		},
		Analysis: Analysis{
			Sentiment:    true,
			Keywords:     true,
			KeywordCount: defaultKeywordCount,
		},
		Provider: Provider{
			YtDlpBinary:         defaultYtDlpBinary,
			PageSize:            defaultPageSize,
			RequestsPerSecond:   defaultRequestsPerSecond,
			TimeoutSeconds:      defaultTimeoutSeconds,
			TranscriptLanguages: []string{"en", "en-US", "en-GB", "en-CA", "en-AU"},
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
