package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the default text handler on stderr. Debug mode lowers
// the level so per-page scraping logs become visible.
func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
