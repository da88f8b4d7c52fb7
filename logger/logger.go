// Package logger is a small leveled logger writing to a single sink,
// typically a log file next to the binary. The file is trimmed to a line cap
// so long-running use cannot grow it without bound.
package logger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is a log severity.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the level's log-line tag.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name, case-insensitively. Unknown names fall
// back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// maxLogLines caps the sink file; once exceeded the file is rewritten with
// only its newest maxLogLines lines.
const maxLogLines = 5000

// Logger writes timestamped, level-tagged lines to a file, trimming the file
// when it grows past the line cap.
type Logger struct {
	mu    sync.Mutex
	file  *os.File
	lines int
	level Level
}

var (
	global *Logger

	// stderrLogger covers logging before Init.
	stderrLogger = &Logger{file: os.Stderr, level: LevelInfo}
)

// Init opens (or creates) the log file at path and installs the global
// logger. The caller should Close it on shutdown.
func Init(path string, level Level) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	l := &Logger{file: f, level: level}
	l.lines = countLines(f)
	global = l
	return l, nil
}

// SetLevel changes the minimum level that gets written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Close closes the sink file.
func (l *Logger) Close() error {
	return l.file.Close()
}

func (l *Logger) log(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	line := fmt.Sprintf("%s [%s] %s\n",
		time.Now().Format("2006/01/02 15:04:05"), level, fmt.Sprintf(format, args...))
	if _, err := l.file.WriteString(line); err != nil {
		return
	}
	l.lines += strings.Count(line, "\n")
	if l.lines > maxLogLines && l.file != os.Stderr {
		l.trim()
	}
}

// trim rewrites the sink keeping only the newest maxLogLines lines.
// Callers hold l.mu.
func (l *Logger) trim() {
	if _, err := l.file.Seek(0, 0); err != nil {
		return
	}
	var kept []string
	scanner := bufio.NewScanner(l.file)
	for scanner.Scan() {
		kept = append(kept, scanner.Text())
	}
	if len(kept) > maxLogLines {
		kept = kept[len(kept)-maxLogLines:]
	}

	if err := l.file.Truncate(0); err != nil {
		return
	}
	if _, err := l.file.Seek(0, 0); err != nil {
		return
	}
	for _, line := range kept {
		_, _ = l.file.WriteString(line + "\n")
	}
	l.lines = len(kept)
}

func countLines(f *os.File) int {
	if _, err := f.Seek(0, 0); err != nil {
		return 0
	}
	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	_, _ = f.Seek(0, 2)
	return count
}

func active() *Logger {
	if global != nil {
		return global
	}
	return stderrLogger
}

// Trace returns a function that logs the elapsed time since the call when
// invoked. Usage: defer logger.Trace("parse")().
func Trace(name string) func() {
	l := active()
	if LevelTrace < l.level {
		return func() {}
	}
	start := time.Now()
	return func() {
		l.log(LevelTrace, "%s: %v", name, time.Since(start))
	}
}

// Debug logs at LevelDebug through the global logger.
func Debug(format string, args ...any) { active().log(LevelDebug, format, args...) }

// Info logs at LevelInfo through the global logger.
func Info(format string, args ...any) { active().log(LevelInfo, format, args...) }

// Warn logs at LevelWarn through the global logger.
func Warn(format string, args ...any) { active().log(LevelWarn, format, args...) }

// Error logs at LevelError through the global logger.
func Error(format string, args ...any) { active().log(LevelError, format, args...) }
