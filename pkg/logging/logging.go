// Package logging wraps zap for the matching engine's diagnostic output.
package logging

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.Logger tagged with an instance id, so log lines
// from multiple engine instances in one process stay distinguishable.
type Logger struct {
	logger *zap.Logger
}

// Level selects the minimum severity a Logger emits.
type Level zapcore.Level

const (
	DEBUG Level = Level(zapcore.DebugLevel)
	INFO  Level = Level(zapcore.InfoLevel)
	WARN  Level = Level(zapcore.WarnLevel)
	ERROR Level = Level(zapcore.ErrorLevel)
)

// ParseLevel maps a config string ("debug", "info", "warn", "error") to
// a Level, defaulting to INFO on an unrecognized value.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return DEBUG
	case "warn":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// NewLogger builds a Logger at the given level, tagged with a fresh
// instance id.
func NewLogger(level Level) *Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.Level(level))
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapLogger, _ := config.Build()
	return &Logger{
		logger: zapLogger.With(zap.String("instance_id", uuid.New().String())),
	}
}

// Debug logs a debug message. A nil Logger is a documented no-op, so
// callers on the engine's hot path can skip a nil check.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.logger.Debug(msg, fields...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.logger.Info(msg, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.logger.Warn(msg, fields...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.logger.Error(msg, fields...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.logger.Sync()
}
