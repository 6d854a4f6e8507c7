package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	File  string
	Level string
	// Verbosity counts -v flags: 1 forces info, 2 or more forces debug.
	Verbosity int
	// Console mirrors records to Stderr. Off while the full-screen UI owns
	// the terminal.
	Console bool
	Stderr  io.Writer
}

// ParseLevel maps a config level name to a slog level, applying the -v
// count on top.
func ParseLevel(level string, verbosity int) slog.Level {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}

	switch {
	case verbosity >= 2:
		lvl = min(lvl, slog.LevelDebug)
	case verbosity == 1:
		lvl = min(lvl, slog.LevelInfo)
	}
	return lvl
}

// SetupLogger returns a logger writing to a rotated file and, in console
// mode, to stderr. The returned closer releases the file.
func SetupLogger(opts Options) (*slog.Logger, io.Closer, error) {
	lvl := ParseLevel(opts.Level, opts.Verbosity)

	logDir := filepath.Dir(opts.File)
	if logDir != "" && logDir != "." {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	fileWriter := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    100, // MB
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   false,
	}

	fileHandler := tint.NewHandler(fileWriter, &tint.Options{
		Level:      lvl,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	})

	if !opts.Console {
		return slog.New(fileHandler), fileWriter, nil
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	stderrHandler := tint.NewHandler(stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
		NoColor:    !colorable(stderr),
	})

	multiHandler := &MultiHandler{
		handlers: []slog.Handler{fileHandler, stderrHandler},
	}

	return slog.New(multiHandler), fileWriter, nil
}

func colorable(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type MultiHandler struct {
	handlers []slog.Handler
}

func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: newHandlers}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: newHandlers}
}
