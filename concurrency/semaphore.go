// concurrency/semaphore.go
/* Provides utilities to manage concurrency control. The handler ensures no more than a
configured number of concurrent requests are sent at the same time, managed with a semaphore. */
package concurrency

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// permitAcquisitionTimeout bounds how long a caller waits for a permit before giving up.
const permitAcquisitionTimeout = 10 * time.Second

// AcquireConcurrencyPermit acquires a concurrency permit to regulate the number of
// concurrent requests. A unique request ID is generated for tracking and attached to
// the returned context under RequestIDKey. Acquisition is bounded by a timeout so a
// saturated client cannot block callers indefinitely.
func (ch *ConcurrencyHandler) AcquireConcurrencyPermit(ctx context.Context) (context.Context, uuid.UUID, error) {
	log := ch.logger

	acquisitionStart := time.Now()
	requestID := uuid.New()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, permitAcquisitionTimeout)
	defer cancel()

	select {
	case ch.sem <- struct{}{}:
		waited := time.Since(acquisitionStart)

		ch.Metrics.Lock.Lock()
		ch.Metrics.PermitWaitTime += waited
		ch.Metrics.TotalRequests++
		ch.Metrics.Lock.Unlock()

		utilized := len(ch.sem)
		available := cap(ch.sem) - utilized
		log.Debug("Acquired concurrency permit",
			zap.String("RequestID", requestID.String()),
			zap.Duration("AcquisitionTime", waited),
			zap.Int("UtilizedPermits", utilized),
			zap.Int("AvailablePermits", available),
		)

		return context.WithValue(ctx, RequestIDKey{}, requestID), requestID, nil

	case <-ctxWithTimeout.Done():
		log.Warn("Failed to acquire concurrency permit", zap.Error(ctxWithTimeout.Err()))
		return ctx, requestID, ctxWithTimeout.Err()
	}
}

// ReleaseConcurrencyPermit returns a permit to the pool; the requestID ties the
// release to its acquisition in the logs.
func (ch *ConcurrencyHandler) ReleaseConcurrencyPermit(requestID uuid.UUID) {
	<-ch.sem

	utilized := len(ch.sem)
	available := cap(ch.sem) - utilized

	ch.logger.Debug("Released concurrency permit",
		zap.String("RequestID", requestID.String()),
		zap.Int("UtilizedPermits", utilized),
		zap.Int("AvailablePermits", available),
	)
}
