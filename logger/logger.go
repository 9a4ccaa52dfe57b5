// logger/logger.go
// Leveled structured logging for the client, backed by zap. Everything the client
// logs goes through the Logger interface so embedders can supply their own sink.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel orders log severities; a logger emits only messages at or above its level.
// The numeric values line up with zap's levels.
type LogLevel int

const (
	LogLevelDebug LogLevel = -1
	LogLevelInfo  LogLevel = 0
	LogLevelWarn  LogLevel = 1
	LogLevelError LogLevel = 2
	LogLevelPanic LogLevel = 4
	LogLevelFatal LogLevel = 5
	// LogLevelNone silences the logger entirely.
	LogLevelNone LogLevel = 6
)

// ParseLogLevelFromString maps a configuration string such as "LogLevelDebug" to its
// LogLevel. Unrecognized strings fall back to Info.
func ParseLogLevelFromString(levelStr string) LogLevel {
	switch levelStr {
	case "LogLevelDebug":
		return LogLevelDebug
	case "LogLevelInfo":
		return LogLevelInfo
	case "LogLevelWarn":
		return LogLevelWarn
	case "LogLevelError":
		return LogLevelError
	case "LogLevelPanic":
		return LogLevelPanic
	case "LogLevelFatal":
		return LogLevelFatal
	case "LogLevelNone":
		return LogLevelNone
	default:
		return LogLevelInfo
	}
}

// Logger is the client's structured logging surface. Error returns an error carrying
// the message so call sites can log and propagate in one step.
type Logger interface {
	SetLevel(level LogLevel)
	Debug(msg string, fields ...zapcore.Field)
	Info(msg string, fields ...zapcore.Field)
	Warn(msg string, fields ...zapcore.Field)
	Error(msg string, fields ...zapcore.Field) error
	Panic(msg string, fields ...zapcore.Field)
	Fatal(msg string, fields ...zapcore.Field)
	With(fields ...zapcore.Field) Logger
	GetLogLevel() LogLevel
}

// zapLogger implements Logger over a zap.Logger. The level gate lives here rather
// than in zap's atomic level so SetLevel works on a shared logger without rebuilding it.
type zapLogger struct {
	logger   *zap.Logger
	logLevel LogLevel
}

func (l *zapLogger) SetLevel(level LogLevel) {
	l.logLevel = level
}

func (l *zapLogger) Debug(msg string, fields ...zapcore.Field) {
	if l.logLevel <= LogLevelDebug {
		l.logger.Debug(msg, fields...)
	}
}

func (l *zapLogger) Info(msg string, fields ...zapcore.Field) {
	if l.logLevel <= LogLevelInfo {
		l.logger.Info(msg, fields...)
	}
}

func (l *zapLogger) Warn(msg string, fields ...zapcore.Field) {
	if l.logLevel <= LogLevelWarn {
		l.logger.Warn(msg, fields...)
	}
}

// Error logs at the Error level and returns an error built from msg. The returned
// error is produced regardless of the level gate, so silenced loggers still let
// callers propagate failures.
func (l *zapLogger) Error(msg string, fields ...zapcore.Field) error {
	if l.logLevel <= LogLevelError {
		l.logger.Error(msg, fields...)
	}
	return fmt.Errorf("%s", msg)
}

func (l *zapLogger) Panic(msg string, fields ...zapcore.Field) {
	if l.logLevel <= LogLevelPanic {
		l.logger.Panic(msg, fields...)
	}
}

func (l *zapLogger) Fatal(msg string, fields ...zapcore.Field) {
	if l.logLevel <= LogLevelFatal {
		l.logger.Fatal(msg, fields...)
	}
}

// With returns a child logger that includes the given fields on every entry.
func (l *zapLogger) With(fields ...zapcore.Field) Logger {
	return &zapLogger{
		logger:   l.logger.With(fields...),
		logLevel: l.logLevel,
	}
}

func (l *zapLogger) GetLogLevel() LogLevel {
	return l.logLevel
}
