package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

func parseOutput(o string) io.Writer {
	switch strings.ToUpper(o) {
	case "STDERR":
		return os.Stderr
	case "DISCARD", "NONE":
		return io.Discard
	}
	return os.Stdout
}

// parseLevel accepts DEBUG, INFO, WARN(ING), ERROR or an slog offset such
// as "INFO+2". Anything else is INFO.
func parseLevel(s string) slog.Level {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "WARNING" {
		s = "WARN"
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// timeReplacer rewrites the top-level time attribute. Named layouts are
// Unix, UnixMilli, RFC3339 and RFC3339Nano; anything else is used as a
// time.Format layout. An empty layout keeps slog's default.
func timeReplacer(layout string) func([]string, slog.Attr) slog.Attr {
	if layout == "" {
		return nil
	}
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key != slog.TimeKey || len(groups) > 0 {
			return a
		}
		t := a.Value.Time()
		switch layout {
		case "Unix":
			return slog.Int64(slog.TimeKey, t.Unix())
		case "UnixMilli":
			return slog.Int64(slog.TimeKey, t.UnixMilli())
		case "RFC3339":
			return slog.String(slog.TimeKey, t.Format(time.RFC3339))
		case "RFC3339Nano":
			return slog.String(slog.TimeKey, t.Format(time.RFC3339Nano))
		}
		return slog.String(slog.TimeKey, t.Format(layout))
	}
}
