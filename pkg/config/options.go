package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptHTTPTimeout sets the per-request timeout in seconds.
func OptHTTPTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("HTTP Timeout", i) {
			c.HTTP.Timeout = i
		}
	}
}

// OptHTTPRetries sets how many times a request is repeated after
// a transport failure. Zero disables retries.
func OptHTTPRetries(i int) Option {
	return func(c *Config) {
		if isValidNonNegativeInt("HTTP Retries", i) {
			c.HTTP.Retries = i
		}
	}
}

// OptHTTPUserAgent sets the User-Agent header of remote calls.
func OptHTTPUserAgent(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("HTTP User Agent", s) {
			c.HTTP.UserAgent = s
		}
	}
}

// OptJournalDriver sets the fetch journal backend.
// Valid values: "sqlite", "postgres", "none".
func OptJournalDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Journal.Driver", s) {
			c.Journal.Driver = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Journal.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Journal.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Journal.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Journal.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Journal.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Journal.Database.SSLMode = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptOutputDir sets the directory for report spreadsheets.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.OutputDir = s
		}
	}
}

// OptOccurrenceLimit caps the occurrences downloaded per name.
// Zero means no limit.
func OptOccurrenceLimit(i int) Option {
	return func(c *Config) {
		if isValidNonNegativeInt("Occurrence Limit", i) {
			c.OccurrenceLimit = i
		}
	}
}

// OptNoProgress disables progress bars.
func OptNoProgress(b bool) Option {
	return func(c *Config) {
		c.NoProgress = b
	}
}

// OptRunForceRefresh makes the run ignore cached records.
// Runtime-only field - not in ToOptions().
func OptRunForceRefresh(b bool) Option {
	return func(c *Config) {
		c.Run.ForceRefresh = b
	}
}

// OptRunSourceIDs limits a run to the given data sources.
// Unknown identifiers are ignored with a warning.
// Runtime-only field - not in ToOptions().
func OptRunSourceIDs(ss []string) Option {
	return func(c *Config) {
		var res []string
		for _, s := range ss {
			s = strings.ToLower(strings.TrimSpace(s))
			if isValidEnum("Run.SourceID", s) {
				res = append(res, s)
			}
		}
		if len(res) > 0 {
			c.Run.SourceIDs = res
		}
	}
}

// OptRunSkipHeader drops the first row of the input spreadsheet.
// Runtime-only field - not in ToOptions().
func OptRunSkipHeader(b bool) Option {
	return func(c *Config) {
		c.Run.SkipHeader = b
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
