package logging

import (
	"cmp"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Setup builds the process-wide slog handler from the LOG_* environment
// variables described by the external interface: LOG_LEVEL selects
// verbosity, LOG_FILE (if set) routes output through a RotatingFile sized
// by LOG_MAX_BYTES / LOG_BACKUP_COUNT. It returns a closer that must be
// called on shutdown; when no log file is configured the closer is a no-op.
func Setup() (*slog.Logger, io.Closer, error) {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if path := strings.TrimSpace(os.Getenv("LOG_FILE")); path != "" {
		opts := []Option{}
		if maxBytes := parseInt64(os.Getenv("LOG_MAX_BYTES"), 0); maxBytes > 0 {
			opts = append(opts, WithMaxSize(maxBytes))
		}
		if backups := parseInt(os.Getenv("LOG_BACKUP_COUNT"), -1); backups >= 0 {
			opts = append(opts, WithMaxBackups(backups))
		}

		rf, err := NewRotatingFile(path, opts...)
		if err != nil {
			return nil, nil, err
		}
		out = rf
		closer = rf
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, closer, nil
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(cmp.Or(raw, "info"))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseInt64(raw string, def int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return def
	}
	return v
}

func parseInt(raw string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
