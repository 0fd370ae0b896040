package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"gorm.io/gorm/logger"
)

// Options selects the handler and level for the process logger
type Options struct {
	// Writer defaults to os.Stdout
	Writer io.Writer
	// Level is one of debug, info, warn, error
	Level string
	// Format is one of color, json, text
	Format    string
	AddSource bool
}

// New builds a slog.Logger from the options
func New(opts Options) *slog.Logger {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	level := ParseLevel(opts.Level)

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		handler = slog.NewJSONHandler(opts.Writer, &slog.HandlerOptions{Level: level, AddSource: opts.AddSource})
	case "text":
		handler = slog.NewTextHandler(opts.Writer, &slog.HandlerOptions{Level: level, AddSource: opts.AddSource})
	default:
		handler = tint.NewHandler(opts.Writer, &tint.Options{
			Level:      level,
			AddSource:  opts.AddSource,
			TimeFormat: "2006-01-02 15:04:05",
		})
	}

	return slog.New(handler)
}

// ParseLevel maps a level name to slog.Level, defaulting to info
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// GormLogger routes GORM's query log through the process logger
func GormLogger(log *slog.Logger, level string) logger.Interface {
	var gormLevel logger.LogLevel
	switch strings.ToLower(level) {
	case "silent":
		gormLevel = logger.Silent
	case "error":
		gormLevel = logger.Error
	case "info":
		gormLevel = logger.Info
	default:
		gormLevel = logger.Warn
	}

	return logger.New(slog.NewLogLogger(log.Handler(), slog.LevelDebug), logger.Config{
		LogLevel:                  gormLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Discard returns a logger that drops everything, for tests and tools
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
