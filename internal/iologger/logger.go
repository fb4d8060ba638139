// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/macrofitas/pkg/config"
	"github.com/lmittmann/tint"
)

// LogFile is the name of the log file in the log directory.
const LogFile = config.AppName + ".log"

// Init initializes the global slog logger with the given configuration.
// Creates log file in logDir if destination is "file".
// If append is true, appends to existing log file; otherwise creates fresh file.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	var writer io.Writer
	var isFile bool

	// Determine output destination
	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		var file *os.File
		var err error

		if append {
			// Append to existing log file (preserve previous logs)
			file, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		} else {
			// Create fresh log file (truncate if exists)
			file, err = os.Create(logPath)
		}

		if err != nil {
			return CreateLogFileError(logPath, err)
		}
		writer = file
		isFile = true
	default:
		writer = os.Stderr
	}

	slog.SetDefault(slog.New(newHandler(writer, cfg, isFile)))
	return nil
}

func newHandler(w io.Writer, cfg config.LogConfig, isFile bool) slog.Handler {
	level := parseLevel(cfg.Level)
	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	switch cfg.Format {
	case "json":
		return slog.NewJSONHandler(w, handlerOpts)
	case "text":
		return slog.NewTextHandler(w, handlerOpts)
	case "tint":
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			// no escape codes in files
			NoColor: isFile,
		})
	default:
		// Default to JSON format for any unrecognized format
		return slog.NewJSONHandler(w, handlerOpts)
	}
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
