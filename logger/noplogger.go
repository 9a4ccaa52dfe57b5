// logger/noplogger.go
package logger

import "go.uber.org/zap"

// NewNopLogger returns a Logger that discards all output. Intended for tests
// and for embedding the client where logging is handled elsewhere.
func NewNopLogger() Logger {
	return &zapLogger{
		logger:   zap.NewNop(),
		logLevel: LogLevelNone,
	}
}
