package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/roomview.txt"

// maxLines bounds the in-memory history kept for the debug overlay.
const maxLines = 1000

// Logger stores leveled lines in memory, appends them to a file on disk and
// optionally mirrors them to a writer such as stderr. Lines below the
// minimum level are dropped everywhere.
type Logger struct {
	mu    sync.Mutex
	lines []string
	path  string
	level slog.Level
	out   io.Writer
}

// Option configures a Logger.
type Option func(*Logger)

// WithPath sets the log file. An empty path disables file output.
func WithPath(path string) Option {
	return func(l *Logger) { l.path = path }
}

// WithLevel sets the minimum level that is recorded.
func WithLevel(level slog.Level) Option {
	return func(l *Logger) { l.level = level }
}

// WithOutput mirrors every recorded line to w.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) { l.out = w }
}

// New returns a Logger writing to LogFilePath at Info level and ensures the
// log directory exists.
func New(opts ...Option) *Logger {
	l := &Logger{path: LogFilePath, level: slog.LevelInfo}
	for _, o := range opts {
		o(l)
	}
	if l.path != "" {
		_ = os.MkdirAll(filepath.Dir(l.path), 0755)
	}
	return l
}

// LevelFromFlags maps the -v and -q command line flags to a level.
// Without flags the viewer logs at Info so load results are visible.
func LevelFromFlags(v, q bool) slog.Level {
	switch {
	case v:
		return slog.LevelDebug
	case q:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Level returns the minimum recorded level.
func (l *Logger) Level() slog.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel changes the minimum recorded level.
func (l *Logger) SetLevel(level slog.Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Log records line at Info level.
func (l *Logger) Log(line string) {
	l.write(slog.LevelInfo, line)
}

// Logf formats and records a line at the given level.
func (l *Logger) Logf(level slog.Level, format string, args ...any) {
	l.write(level, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...any) { l.Logf(slog.LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.Logf(slog.LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.Logf(slog.LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.Logf(slog.LevelError, format, args...) }

// write prefixes line with [timestamp] and the level name, then records it.
func (l *Logger) write(level slog.Level, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + level.String() + " " + line

	l.lines = append(l.lines, stamped)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
	if l.out != nil {
		_, _ = io.WriteString(l.out, stamped+"\n")
	}
	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
