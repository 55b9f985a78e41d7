// Package logging sets up structured JSON logging with size-based file
// rotation.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config contains logging configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// FilePath is the log file path. Empty means no file logging.
	FilePath string
	// MaxSizeMB is the maximum size in MB before rotation.
	MaxSizeMB int
	// MaxFiles is the number of rotated files to keep.
	MaxFiles int
	// WriteToStderr mirrors log output to stderr.
	WriteToStderr bool
}

// DefaultConfig returns sensible defaults for file logging.
func DefaultConfig() Config {
	return Config{
		Level:         "info",
		FilePath:      DefaultLogPath(),
		MaxSizeMB:     10,
		MaxFiles:      5,
		WriteToStderr: false,
	}
}

// DefaultLogPath returns the default log file location under the user's
// home directory.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "wikigen", "wikigen.log")
	}
	return filepath.Join(home, ".wikigen", "logs", "wikigen.log")
}

// Setup initializes logging and returns the logger plus a cleanup function
// that flushes and closes the log file.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	var output io.Writer
	cleanup := func() {}

	if cfg.FilePath != "" {
		writer, err := NewRotatingWriter(cfg.FilePath, cfg.MaxSizeMB, cfg.MaxFiles)
		if err != nil {
			return nil, nil, err
		}
		output = writer
		cleanup = func() {
			_ = writer.Sync()
			_ = writer.Close()
		}
		if cfg.WriteToStderr {
			output = io.MultiWriter(writer, os.Stderr)
		}
	} else {
		output = os.Stderr
	}

	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	return slog.New(handler), cleanup, nil
}

// SetupDefault configures the process-wide default logger at the given
// level and returns the cleanup function.
func SetupDefault(level string) (func(), error) {
	cfg := DefaultConfig()
	cfg.Level = level

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return cleanup, nil
}

// parseLevel converts a string level to slog.Level.
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
