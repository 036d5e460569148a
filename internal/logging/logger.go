// Starchart - Star-Field Charts and Time-Lapse Sky Animation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/starchart

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error, fatal, panic, disabled.
	// Default: info
	Level string

	// Format is the output format: json or console.
	// Default: json
	Format string

	// Caller includes caller file and line number in logs.
	Caller bool

	// NoTimestamp drops the time field. Useful for golden-output tests.
	NoTimestamp bool

	// Output is the writer for log output.
	// Default: os.Stderr
	Output io.Writer
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
		Output: os.Stderr,
	}
}

var (
	mu  sync.RWMutex
	log = newLogger(DefaultConfig())
)

// Init replaces the global logger with one built from cfg. It may be called
// again to reconfigure.
func Init(cfg Config) {
	l := newLogger(cfg)
	mu.Lock()
	log = l
	mu.Unlock()
}

func newLogger(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.ErrorFieldName = "error"

	out := cfg.Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).With()
	if !cfg.NoTimestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

var levels = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"fatal":    zerolog.FatalLevel,
	"panic":    zerolog.PanicLevel,
	"disabled": zerolog.Disabled,
	"off":      zerolog.Disabled,
}

// parseLevel converts a level name to zerolog.Level. Unknown or empty names
// mean info.
func parseLevel(level string) zerolog.Level {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return l
	}
	return zerolog.InfoLevel
}

// ValidLevel reports whether level names a log level.
func ValidLevel(level string) bool {
	_, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	return ok
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger replaces the global logger. Tests use it to capture output.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// Debug starts a debug event on the global logger.
//
//	logging.Debug().Str("path", path).Msg("Catalog cached on disk")
func Debug() *zerolog.Event {
	l := current()
	return l.Debug()
}

// Info starts an info event on the global logger.
func Info() *zerolog.Event {
	l := current()
	return l.Info()
}

// Warn starts a warning event on the global logger.
func Warn() *zerolog.Event {
	l := current()
	return l.Warn()
}

// Error starts an error event on the global logger.
func Error() *zerolog.Event {
	l := current()
	return l.Error()
}

// NewTestLogger creates a logger that writes JSON lines to w.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
