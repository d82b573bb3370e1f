// Package log wraps github.com/sirupsen/logrus with the small, leveled
// call shape the rest of this module expects: package-level Debug/Info/Warn/
// Error helpers, a configurable output and level, and a WithFields escape
// hatch for structured context (state transitions, insertion-mode switches,
// recorded parse errors).
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Level is a logrus.Level alias so callers never need to import logrus
// directly to name a level.
type Level = logrus.Level

const (
	DebugLevel = logrus.DebugLevel
	InfoLevel  = logrus.InfoLevel
	WarnLevel  = logrus.WarnLevel
	ErrorLevel = logrus.ErrorLevel
)

// Logger is a leveled logger bound to a logrus entry. The zero value is not
// usable; construct with New.
type Logger struct {
	mu    sync.Mutex
	entry *logrus.Entry
}

// New creates a Logger writing to out at the given minimum level.
func New(out io.Writer, level Level) *Logger {
	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(level)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &Logger{entry: logrus.NewEntry(base)}
}

var std = New(os.Stderr, WarnLevel)

// SetOutput sets the output destination for the standard logger.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.entry.Logger.SetOutput(w)
}

// SetLevel sets the minimum log level for the standard logger.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.entry.Logger.SetLevel(level)
}

// GetLevel returns the standard logger's current minimum level.
func GetLevel() Level {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.entry.Logger.GetLevel()
}

// SetPrefix tags every subsequent standard-logger message with a "component"
// field, the nearest logrus equivalent of the teacher's plain string prefix.
func SetPrefix(prefix string) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.entry = std.entry.Logger.WithField("component", prefix)
}

func (l *Logger) log(level Level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	entry := l.entry
	l.mu.Unlock()
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Log(level, msg)
}

func (l *Logger) Debug(msg string) { l.log(DebugLevel, msg, nil) }
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Info(msg string) { l.log(InfoLevel, msg, nil) }
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Warn(msg string) { l.log(WarnLevel, msg, nil) }
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Error(msg string) { l.log(ErrorLevel, msg, nil) }
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// WithFields logs msg at level with structured key-value fields attached.
func (l *Logger) WithFields(level Level, msg string, fields map[string]interface{}) {
	l.log(level, msg, fields)
}

func Debug(msg string) { std.log(DebugLevel, msg, nil) }
func Debugf(format string, args ...interface{}) {
	std.log(DebugLevel, fmt.Sprintf(format, args...), nil)
}

func Info(msg string) { std.log(InfoLevel, msg, nil) }
func Infof(format string, args ...interface{}) {
	std.log(InfoLevel, fmt.Sprintf(format, args...), nil)
}

func Warn(msg string) { std.log(WarnLevel, msg, nil) }
func Warnf(format string, args ...interface{}) {
	std.log(WarnLevel, fmt.Sprintf(format, args...), nil)
}

func Error(msg string) { std.log(ErrorLevel, msg, nil) }
func Errorf(format string, args ...interface{}) {
	std.log(ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// WithFields logs msg at level with structured key-value fields using the
// standard logger.
func WithFields(level Level, msg string, fields map[string]interface{}) {
	std.log(level, msg, fields)
}
