package slogx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lmittmann/tint"
)

var dl atomic.Pointer[Logger]

func init() {
	SetDefault(New(slog.Default().Handler()))
}

type Config struct {
	Level     string
	Pretty    bool
	AddSource bool
	// Service, when set, is attached to every record.
	Service string
}

// NewHandler builds a tint handler for terminals or a JSON one otherwise.
func NewHandler(w io.Writer, c Config) (slog.Handler, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	if c.Pretty {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  c.AddSource,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: c.AddSource,
		})
	}

	if c.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", c.Service)})
	}

	return handler, nil
}

func InitGlobal(w io.Writer, c Config) error {
	handler, err := NewHandler(w, c)
	if err != nil {
		return fmt.Errorf("init global logger: %v", err)
	}

	SetDefault(New(handler))

	return nil
}

func SetDefault(l *Logger) {
	dl.Store(l)
}

func Default() *Logger {
	return dl.Load()
}

func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().Info(ctx, msg, attrs...)
}

func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().Debug(ctx, msg, attrs...)
}

func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().Warn(ctx, msg, attrs...)
}

func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().Error(ctx, msg, attrs...)
}

func Log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	Default().Log(ctx, level, msg, attrs...)
}
