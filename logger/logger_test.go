// logger/logger_test.go
package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParseLogLevelFromString(t *testing.T) {
	tests := []struct {
		name     string
		levelStr string
		expected LogLevel
	}{
		{"debug level", "LogLevelDebug", LogLevelDebug},
		{"info level", "LogLevelInfo", LogLevelInfo},
		{"warn level", "LogLevelWarn", LogLevelWarn},
		{"error level", "LogLevelError", LogLevelError},
		{"panic level", "LogLevelPanic", LogLevelPanic},
		{"fatal level", "LogLevelFatal", LogLevelFatal},
		{"unknown string defaults to info", "LogLevelVerbose", LogLevelInfo},
		{"empty string defaults to info", "", LogLevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogLevelFromString(tt.levelStr))
		})
	}
}

func TestSetLevelAndGetLogLevel(t *testing.T) {
	log := &zapLogger{logger: zap.NewNop(), logLevel: LogLevelInfo}

	log.SetLevel(LogLevelDebug)
	assert.Equal(t, LogLevelDebug, log.GetLogLevel())

	log.SetLevel(LogLevelError)
	assert.Equal(t, LogLevelError, log.GetLogLevel())
}

func TestErrorReturnsMessage(t *testing.T) {
	log := &zapLogger{logger: zap.NewNop(), logLevel: LogLevelError}

	err := log.Error("token refresh failed")
	assert.EqualError(t, err, "token refresh failed")
}

func TestWithPreservesLevel(t *testing.T) {
	log := &zapLogger{logger: zap.NewNop(), logLevel: LogLevelWarn}

	child := log.With(zap.String("component", "refresh"))
	assert.Equal(t, LogLevelWarn, child.GetLogLevel())
}

func TestBuildLoggerReturnsUsableLogger(t *testing.T) {
	log := BuildLogger(LogLevelInfo, LogOutputJSON)
	assert.NotNil(t, log)
	assert.Equal(t, LogLevelInfo, log.GetLogLevel())
}

func TestBuildLoggerConsoleFormat(t *testing.T) {
	log := BuildLogger(LogLevelFatal, LogOutputHumanReadable)
	assert.NotNil(t, log)
	assert.Equal(t, LogLevelFatal, log.GetLogLevel())

	// The built logger must be usable end to end, not just constructible.
	assert.EqualError(t, log.Error("exchange rejected"), "exchange rejected")
}
