package logger

import (
	"log/slog"
	"os"
)

// Initialize installs a JSON slog handler as the process-wide default.
func Initialize(level slog.Level) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	slog.SetDefault(logger)
}

// Level maps the CLI verbosity switch to a slog level.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Named returns the default logger tagged with a component name.
func Named(name string) *slog.Logger {
	logger := slog.Default()
	if logger == nil {
		return nil
	}

	return logger.With("name", name)
}
