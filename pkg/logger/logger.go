package logger

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	zl zerolog.Logger
}

func New() *Logger {
	return NewFromConfig(Config{})
}

// Config.Level is a LOG_LEVEL value; empty or unknown levels mean info.
type Config struct {
	Level  string
	Output io.Writer
}

func NewFromConfig(cfg Config) *Logger {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	zl := zerolog.New(out).
		With().
		Timestamp().
		Logger().
		Level(level)
	return &Logger{zl: zl}
}

// Nop discards everything; tests use it when log output is irrelevant.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func ParseLevel(raw string) (zerolog.Level, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return zerolog.InfoLevel, nil
	}
	switch raw {
	case "debug", "info", "warn", "error":
		return zerolog.ParseLevel(raw)
	default:
		return zerolog.NoLevel, errors.New("logger: invalid level (expected debug|info|warn|error)")
	}
}

func (l *Logger) WithOutput(w io.Writer) *Logger {
	return &Logger{zl: l.zl.Output(w)}
}

func (l *Logger) WithLevel(level zerolog.Level) *Logger {
	return &Logger{zl: l.zl.Level(level)}
}

// With returns a child logger carrying the given component name.
func (l *Logger) With(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
