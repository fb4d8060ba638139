// Package config provides configuration management for macrofitas.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - HTTP: timeout, retries, user_agent
//   - Journal: driver, database (host, port, user, password, database, ssl_mode)
//   - Log: level, format, destination
//   - General: output_dir, occurrence_limit, no_progress
//
// Runtime-only fields (CLI flags only):
//   - Run.ForceRefresh, Run.SourceIDs, Run.SkipHeader (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use MACROFITAS_ prefix with underscores for nesting:
//
//	MACROFITAS_HTTP_TIMEOUT=20
//	MACROFITAS_JOURNAL_DRIVER=sqlite
//	MACROFITAS_LOG_LEVEL=info
//	MACROFITAS_OCCURRENCE_LIMIT=1000
package config

// Config represents the complete macrofitas configuration.
type Config struct {
	// HTTP contains settings shared by all remote data-source clients.
	HTTP HTTPConfig `mapstructure:"http" yaml:"http"`

	// Journal keeps a log of every fetch outcome.
	Journal JournalConfig `mapstructure:"journal" yaml:"journal"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// OutputDir is where the report spreadsheets are saved. When empty,
	// reports are saved next to the input file.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// OccurrenceLimit caps the number of occurrences downloaded per name
	// from occurrence sources. Zero means no limit.
	OccurrenceLimit int `mapstructure:"occurrence_limit" yaml:"occurrence_limit"`

	// NoProgress disables progress bars in the terminal.
	NoProgress bool `mapstructure:"no_progress" yaml:"no_progress"`

	// Run contains settings specific to the run command.
	Run RunConfig `mapstructure:"run" yaml:"run"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// HTTPConfig contains settings for remote calls.
type HTTPConfig struct {
	// Timeout is the per-request timeout in seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`

	// Retries is the number of extra attempts made after a transport
	// failure. "Not found" answers are never retried.
	Retries int `mapstructure:"retries" yaml:"retries"`

	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// JournalConfig selects where fetch outcomes are recorded.
type JournalConfig struct {
	// Driver can be 'sqlite' (local file), 'postgres' or 'none'.
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Database is used only by the 'postgres' driver.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// RunConfig contains settings of a single pipeline run.
type RunConfig struct {
	// ForceRefresh ignores cached records and fetches every name again.
	ForceRefresh bool `mapstructure:"force_refresh" yaml:"force_refresh"`

	// SourceIDs limits the run to the given data sources
	// ("flora", "plant", "gbif", "splink"). Empty means all sources.
	SourceIDs []string `mapstructure:"source_ids" yaml:"source_ids"`

	// SkipHeader drops the first row of the input spreadsheet.
	// By default the first cell is treated as a name as well.
	SkipHeader bool `mapstructure:"skip_header" yaml:"skip_header"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		HTTP: HTTPConfig{
			Timeout:   20,
			Retries:   1,
			UserAgent: AppName + "/" + "0.1",
		},
		Journal: JournalConfig{
			Driver: "sqlite",
			Database: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "postgres",
				Password: "postgres",
				Database: AppName,
				SSLMode:  "disable",
			},
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
