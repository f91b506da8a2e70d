package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// Logger interface defines the logging functionality required by the client.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	WithFields(fields ...Field) Logger
}

// Field creators.
func String(key string, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Err creates a field holding the error text, or "<nil>" for a nil error.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
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
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// NoOpLogger is a logger that does nothing, used as a default when no logger is provided.
type NoOpLogger struct{}

func (l *NoOpLogger) Debug(_ string)                    {}
func (l *NoOpLogger) Info(_ string)                     {}
func (l *NoOpLogger) Warn(_ string)                     {}
func (l *NoOpLogger) Error(_ string)                    {}
func (l *NoOpLogger) Debugf(_ string, _ ...interface{}) {}
func (l *NoOpLogger) Infof(_ string, _ ...interface{})  {}
func (l *NoOpLogger) Warnf(_ string, _ ...interface{})  {}
func (l *NoOpLogger) Errorf(_ string, _ ...interface{}) {}
func (l *NoOpLogger) WithFields(_ ...Field) Logger      { return l }

// BasicLogger uses the standard library log package for logging.
// Entries below the minimum level are discarded.
type BasicLogger struct {
	logger *log.Logger
	level  Level
	fields []Field
}

// NewBasicLogger creates a new BasicLogger that writes every level to stdout.
func NewBasicLogger() Logger {
	return NewLogger(os.Stdout, LevelDebug)
}

// NewLogger creates a BasicLogger writing entries at or above level to w.
func NewLogger(w io.Writer, level Level) *BasicLogger {
	return &BasicLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  level,
		fields: nil,
	}
}

func (l *BasicLogger) log(level Level, msg string) {
	if level < l.level {
		return
	}

	if len(l.fields) == 0 {
		l.logger.Printf("%s: %s", level, msg)
		return
	}

	fieldStrings := make([]string, len(l.fields))
	for i, f := range l.fields {
		fieldStrings[i] = fmt.Sprintf("%s=%v", f.Key, f.Value)
	}
	l.logger.Printf("%s: %s | %s", level, msg, strings.Join(fieldStrings, " "))
}

func (l *BasicLogger) Debug(msg string) { l.log(LevelDebug, msg) }
func (l *BasicLogger) Info(msg string)  { l.log(LevelInfo, msg) }
func (l *BasicLogger) Warn(msg string)  { l.log(LevelWarn, msg) }
func (l *BasicLogger) Error(msg string) { l.log(LevelError, msg) }

func (l *BasicLogger) Debugf(format string, args ...interface{}) {
	l.log(LevelDebug, fmt.Sprintf(format, args...))
}

func (l *BasicLogger) Infof(format string, args ...interface{}) {
	l.log(LevelInfo, fmt.Sprintf(format, args...))
}

func (l *BasicLogger) Warnf(format string, args ...interface{}) {
	l.log(LevelWarn, fmt.Sprintf(format, args...))
}

func (l *BasicLogger) Errorf(format string, args ...interface{}) {
	l.log(LevelError, fmt.Sprintf(format, args...))
}

// WithFields returns a child logger carrying the parent's fields followed by fields.
func (l *BasicLogger) WithFields(fields ...Field) Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)

	return &BasicLogger{
		logger: l.logger,
		level:  l.level,
		fields: merged,
	}
}
