// Package logging provides a leveled logger with key/value fields.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string. Unknown strings mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "off", "none", "quiet":
		return LevelOff
	default:
		return LevelInfo
	}
}

func (l Level) toSlog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelOff:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

// Logger writes timestamped "key=value" lines. Loggers derived with With
// share their parent's level and output.
type Logger struct {
	level *slog.LevelVar
	out   *switchWriter
	l     *slog.Logger
}

// New creates a logger writing to stderr.
func New(level Level) *Logger {
	return newLogger(level, os.Stderr)
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return newLogger(LevelOff, io.Discard)
}

func newLogger(level Level, w io.Writer) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(level.toSlog())
	out := &switchWriter{w: w}
	h := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:       lv,
		ReplaceAttr: shortTime,
	})
	return &Logger{level: lv, out: out, l: slog.New(h)}
}

// shortTime trims the timestamp to wall-clock milliseconds.
func shortTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.String(slog.TimeKey, a.Value.Time().Format("15:04:05.000"))
	}
	return a
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.out.set(w)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level.toSlog())
}

// With returns a logger tagging every line with component and the given
// key/value pairs.
func (l *Logger) With(component string, kv ...any) *Logger {
	args := append([]any{"component", component}, kv...)
	return &Logger{level: l.level, out: l.out, l: l.l.With(args...)}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, kv ...any) { l.l.Debug(msg, kv...) }

// Info logs an info message.
func (l *Logger) Info(msg string, kv ...any) { l.l.Info(msg, kv...) }

// Warn logs a warning message.
func (l *Logger) Warn(msg string, kv ...any) { l.l.Warn(msg, kv...) }

// Error logs an error message.
func (l *Logger) Error(msg string, kv ...any) { l.l.Error(msg, kv...) }

// switchWriter lets SetOutput redirect loggers already derived with With.
type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *switchWriter) set(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}
