package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger is the logging surface the rest of the application depends on.
// HTTP request logging is toggled separately from the level so the
// keyboard shortcut can flip it at runtime without touching verbosity.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	SetLevel(level slog.Level)
	GetLevel() slog.Level
	EnableHTTPLogging()
	DisableHTTPLogging()
	IsHTTPLoggingEnabled() bool
}

// SlogLogger implements Logger on top of slog with a runtime-adjustable
// level.
type SlogLogger struct {
	logger      *slog.Logger
	level       *slog.LevelVar
	httpLogging atomic.Bool
}

// New returns a logger at info level writing to stdout.
func New() *SlogLogger {
	return NewWithLevel(slog.LevelInfo)
}

// NewWithLevel returns a logger at the given level writing to stdout.
func NewWithLevel(level slog.Level) *SlogLogger {
	return newWithWriter(os.Stdout, level)
}

func newWithWriter(w io.Writer, level slog.Level) *SlogLogger {
	lv := &slog.LevelVar{}
	lv.Set(level)
	return &SlogLogger{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})),
		level:  lv,
	}
}

// ParseLevel maps a level name (case-insensitive) to a slog.Level,
// defaulting to info for anything unrecognized.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// SetLevel adjusts verbosity at runtime.
func (l *SlogLogger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

func (l *SlogLogger) GetLevel() slog.Level {
	return l.level.Level()
}

func (l *SlogLogger) EnableHTTPLogging() {
	l.httpLogging.Store(true)
}

func (l *SlogLogger) DisableHTTPLogging() {
	l.httpLogging.Store(false)
}

func (l *SlogLogger) IsHTTPLoggingEnabled() bool {
	return l.httpLogging.Load()
}
