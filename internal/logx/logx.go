// Package logx configures the process-wide slog logger.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"
)

// ParseLevel maps debug, info, warn and error (any case) to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// New returns a text logger writing to w. Level names are colored when w is
// a terminal that supports it.
func New(w io.Writer, level slog.Level) *slog.Logger {
	out := termenv.NewOutput(w)
	colors := map[slog.Level]termenv.Color{
		slog.LevelDebug: out.Color("8"),
		slog.LevelInfo:  out.Color("12"),
		slog.LevelWarn:  out.Color("11"),
		slog.LevelError: out.Color("9"),
	}
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 || a.Key != slog.LevelKey || out.Profile == termenv.Ascii {
				return a
			}
			lvl, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			return slog.String(a.Key, out.String(lvl.String()).Foreground(colors[lvl]).Bold().String())
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SetDefault installs New(w, level) as the default logger.
func SetDefault(w io.Writer, level slog.Level) *slog.Logger {
	l := New(w, level)
	slog.SetDefault(l)
	return l
}
