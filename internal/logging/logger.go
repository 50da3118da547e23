package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LevelNotice reports build milestones ("Building...", "Cleaning...").
const LevelNotice = slog.Level(2)

// FieldComponent is the attribute key added by NewComponentLogger.
const FieldComponent = "component"

// Options describes logger construction parameters.
type Options struct {
	Level  string    // debug, info, notice, warn, error
	Format string    // console or json
	Writer io.Writer // defaults to os.Stderr
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		handlerOpts.ReplaceAttr = replaceConsoleAttr
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		handlerOpts.ReplaceAttr = replaceJSONAttr
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "notice":
		return LevelNotice, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log level: unsupported value %q", level)
	}
}

// NewNop returns a logger that discards every record.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// Notice logs msg at LevelNotice.
func Notice(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelNotice, msg, args...)
}

// replaceConsoleAttr drops timestamps and names the notice level.
func replaceConsoleAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		return slog.Attr{}
	case slog.LevelKey:
		attr.Value = slog.StringValue(levelName(attr.Value))
	}
	return attr
}

func replaceJSONAttr(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "ts"
		if attr.Value.Kind() == slog.KindTime {
			attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
		}
	case slog.LevelKey:
		attr.Value = slog.StringValue(strings.ToLower(levelName(attr.Value)))
	}
	return attr
}

func levelName(v slog.Value) string {
	if lvl, ok := v.Any().(slog.Level); ok && lvl == LevelNotice {
		return "NOTICE"
	}
	return v.String()
}
