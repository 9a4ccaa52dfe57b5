// concurrency/handler.go
package concurrency

import (
	"sync"
	"time"

	"github.com/CharlSquash/go-solosync-client/logger"
)

// ConcurrencyHandler bounds the number of requests in flight at once.
type ConcurrencyHandler struct {
	sem     chan struct{}
	logger  logger.Logger
	lock    sync.Mutex
	Metrics *ConcurrencyMetrics
}

// ConcurrencyMetrics captures counters related to the client's concurrent request handling.
type ConcurrencyMetrics struct {
	TotalRequests       int64         // Total number of requests made
	TotalAuthFailures   int64         // Total number of authentication failures encountered
	TotalTokenRefreshes int64         // Total number of refresh exchanges performed
	PermitWaitTime      time.Duration // Total time spent waiting for permits
	Lock                sync.Mutex    // Lock for metrics fields
}

// NewConcurrencyHandler builds a handler whose semaphore admits at most limit
// requests at a time. A limit below one is clamped to one.
func NewConcurrencyHandler(limit int, log logger.Logger, metrics *ConcurrencyMetrics) *ConcurrencyHandler {
	if limit < 1 {
		limit = 1
	}
	if metrics == nil {
		metrics = &ConcurrencyMetrics{}
	}
	return &ConcurrencyHandler{
		sem:     make(chan struct{}, limit),
		logger:  log,
		Metrics: metrics,
	}
}

// RequestIDKey is the context key type under which the per-request uuid is stored.
// This private type ensures the key is distinct from other context keys.
type RequestIDKey struct{}
