// mocklogger/mocklogger.go
// Testify-based mock of the logger.Logger interface, for asserting on what the
// client logs.
package mocklogger

import (
	"github.com/CharlSquash/go-solosync-client/logger"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var _ logger.Logger = (*MockLogger)(nil)

// MockLogger records calls to every Logger method through testify's mock.Mock.
// Expectations are set with On("Debug", ...) etc. as usual.
type MockLogger struct {
	mock.Mock
	logLevel logger.LogLevel
}

// NewMockLogger returns a MockLogger ready for expectations.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) SetLevel(level logger.LogLevel) {
	m.logLevel = level
}

func (m *MockLogger) GetLogLevel() logger.LogLevel {
	return m.logLevel
}

// With returns a fresh mock at the same level. Field context is not carried; tests
// assert on the individual log calls instead.
func (m *MockLogger) With(fields ...zap.Field) logger.Logger {
	child := NewMockLogger()
	child.logLevel = m.logLevel
	return child
}

func (m *MockLogger) Debug(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

// Error returns whatever error the expectation was configured with.
func (m *MockLogger) Error(msg string, fields ...zap.Field) error {
	args := m.Called(msg, fields)
	return args.Error(0)
}

func (m *MockLogger) Panic(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields ...zap.Field) {
	m.Called(msg, fields)
}
