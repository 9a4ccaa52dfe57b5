// refresh/coordinator.go
/* The refresh package implements the token-refresh concurrency controller. When a request fails
with an authentication error, the coordinator performs at most one refresh exchange regardless of
how many requests fail at the same time: the first failing caller becomes the leader and runs the
exchange, every other caller is queued on a one-shot channel and receives the leader's outcome.
When refresh is impossible (no refresh token stored) or the exchange is rejected, both tokens are
cleared, the injected logout callback fires exactly once, and every queued caller is failed with
the refresh error. */
package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/CharlSquash/go-solosync-client/credstore"
	"github.com/CharlSquash/go-solosync-client/logger"
	"go.uber.org/zap"
)

// ErrNoRefreshToken is returned when a refresh is triggered but no refresh token is stored.
// No network I/O is attempted in that case.
var ErrNoRefreshToken = errors.New("no refresh token available")

// errAborted is delivered to waiters if the exchange terminates without producing
// an outcome, e.g. a panic inside the exchange function. The coordinator must never
// stay in the refreshing state after an attempt concludes.
var errAborted = errors.New("token refresh aborted unexpectedly")

// ExchangeFunc performs the refresh exchange: it presents the refresh token to the
// token-refresh endpoint and returns the new access token. Implementations must not
// route through the authenticated request path, or a 401 on the exchange itself
// would re-enter the coordinator.
type ExchangeFunc func(ctx context.Context, refreshToken string) (string, error)

// LogoutFunc is invoked exactly once per unrecoverable refresh attempt, after both
// tokens have been cleared. Navigation or UI consequences belong to the caller.
type LogoutFunc func()

// result is the outcome of one refresh attempt, delivered to the leader and every waiter.
type result struct {
	accessToken string
	err         error
}

// inflight is the Refreshing state: it exists only while an exchange is outstanding
// and owns the queue of waiting callers. A nil inflight pointer is the Idle state,
// so a non-empty queue can only exist while refreshing.
type inflight struct {
	waiters []chan result
}

// Coordinator is the single-flight token refresh state machine. One Coordinator
// belongs to one client instance; independent clients hold independent state.
type Coordinator struct {
	store    credstore.Store
	exchange ExchangeFunc
	onLogout LogoutFunc
	log      logger.Logger

	lock    sync.Mutex
	current *inflight // nil when idle
}

// NewCoordinator creates a Coordinator around the given credential store, exchange
// call and logout callback. onLogout may be nil.
func NewCoordinator(store credstore.Store, exchange ExchangeFunc, onLogout LogoutFunc, log logger.Logger) *Coordinator {
	return &Coordinator{
		store:    store,
		exchange: exchange,
		onLogout: onLogout,
		log:      log,
	}
}

// Resolve returns a fresh access token after an authentication failure. If no refresh
// is in flight the caller becomes the leader and performs the exchange; otherwise the
// caller is queued and blocks until the outstanding attempt concludes. Queued callers
// cannot be withdrawn once submitted: ctx is honored only by the leader's exchange
// call, not by waiting.
func (c *Coordinator) Resolve(ctx context.Context) (string, error) {
	c.lock.Lock()
	if c.current != nil {
		waiter := make(chan result, 1)
		c.current.waiters = append(c.current.waiters, waiter)
		queued := len(c.current.waiters)
		c.lock.Unlock()

		c.log.Debug("Refresh already in flight, queueing caller", zap.Int("queued", queued))
		res := <-waiter
		return res.accessToken, res.err
	}

	c.current = &inflight{}
	c.lock.Unlock()

	return c.lead(ctx)
}

// Refreshing reports whether an exchange is currently outstanding.
func (c *Coordinator) Refreshing() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.current != nil
}

// lead runs one refresh attempt as the leader. The deferred conclude restores the
// idle state and drains the queue on every exit path, including a panicking exchange.
func (c *Coordinator) lead(ctx context.Context) (string, error) {
	res := result{err: errAborted}
	defer func() {
		c.conclude(res)
	}()

	res = c.attempt(ctx)
	return res.accessToken, res.err
}

// attempt performs the exchange and the success/failure side effects.
func (c *Coordinator) attempt(ctx context.Context) result {
	refreshToken, ok := c.store.Get(credstore.KeyRefreshToken)
	if !ok {
		c.log.Warn("Refresh triggered with no stored refresh token, logging out")
		c.forceLogout()
		return result{err: ErrNoRefreshToken}
	}

	c.log.Debug("Performing token refresh exchange")
	accessToken, err := c.exchange(ctx, refreshToken)
	if err != nil {
		c.log.Warn("Token refresh exchange rejected, logging out", zap.Error(err))
		c.forceLogout()
		return result{err: fmt.Errorf("token refresh failed: %w", err)}
	}

	c.store.Set(credstore.KeyAccessToken, accessToken)
	c.log.Info("Token refresh succeeded, new access token stored")
	return result{accessToken: accessToken}
}

// conclude transitions back to idle and delivers the outcome to every queued caller.
// Delivery happens outside the lock; waiter channels are buffered so conclude never
// blocks on a slow waiter.
func (c *Coordinator) conclude(res result) {
	c.lock.Lock()
	waiters := c.current.waiters
	c.current = nil
	c.lock.Unlock()

	if len(waiters) > 0 {
		c.log.Debug("Draining refresh queue", zap.Int("waiters", len(waiters)), zap.Bool("success", res.err == nil))
	}
	for _, waiter := range waiters {
		waiter <- res
	}
}

// forceLogout clears both tokens and fires the logout callback. Called only from the
// leader, so it runs at most once per refresh attempt.
func (c *Coordinator) forceLogout() {
	credstore.ClearTokenPair(c.store)
	if c.onLogout != nil {
		c.onLogout()
	}
}
