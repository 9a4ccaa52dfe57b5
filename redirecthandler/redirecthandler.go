// redirecthandler/redirecthandler.go
package redirecthandler

import (
	"fmt"
	"net/http"

	"github.com/CharlSquash/go-solosync-client/logger"
	"github.com/CharlSquash/go-solosync-client/status"
	"go.uber.org/zap"
)

// RedirectHandler holds the redirect-following policy for the client.
type RedirectHandler struct {
	Logger           logger.Logger // Logger instance for logging.
	MaxRedirects     int           // Maximum allowed redirects to prevent infinite loops.
	SensitiveHeaders []string      // Headers to be removed on cross-domain redirects.
}

// NewRedirectHandler builds a RedirectHandler with the given policy.
func NewRedirectHandler(log logger.Logger, maxRedirects int) *RedirectHandler {
	return &RedirectHandler{
		Logger:           log,
		MaxRedirects:     maxRedirects,
		SensitiveHeaders: []string{"Authorization", "Cookie"},
	}
}

// WithRedirectHandling installs the policy as the client's CheckRedirect.
func (r *RedirectHandler) WithRedirectHandling(client *http.Client) {
	client.CheckRedirect = r.checkRedirect
}

// checkRedirect enforces the cap, refuses to re-send non-idempotent bodies, and
// strips credentials on cross-domain hops.
func (r *RedirectHandler) checkRedirect(req *http.Request, via []*http.Request) error {

	// Replaying a POST body across a redirect risks duplicating a non-idempotent
	// operation, so return the redirect response as is.
	if req.Method == http.MethodPost || req.Method == http.MethodPatch {
		r.Logger.Warn("Redirect attempted on non-idempotent method, not following", zap.String("method", req.Method))
		return http.ErrUseLastResponse
	}

	if len(via) >= r.MaxRedirects {
		r.Logger.Error("Too many redirects", zap.Int("maxRedirects", r.MaxRedirects))
		return fmt.Errorf("stopped after %d redirects", r.MaxRedirects)
	}

	if len(via) > 0 {
		previous := via[len(via)-1]
		if req.URL.Host != previous.URL.Host {
			r.stripSensitiveHeaders(req)
			r.Logger.Warn("Cross-domain redirect, sensitive headers removed",
				zap.String("from", previous.URL.Host),
				zap.String("to", req.URL.Host),
			)
		}
		if resp := req.Response; resp != nil && status.IsPermanentRedirect(resp.StatusCode) {
			r.Logger.Info("Following permanent redirect",
				zap.String("from", previous.URL.String()),
				zap.String("to", req.URL.String()),
			)
		}
	}

	r.Logger.Debug("Following redirect", zap.String("url", req.URL.String()), zap.Int("hop", len(via)))
	return nil
}

// stripSensitiveHeaders removes sensitive headers from the request on cross-domain redirects.
func (r *RedirectHandler) stripSensitiveHeaders(req *http.Request) {
	for _, header := range r.SensitiveHeaders {
		req.Header.Del(header)
	}
}

// SetupRedirectHandler configures the client's underlying *http.Client for redirect handling.
// When followRedirects is disabled, redirect responses are returned to the caller untouched.
func SetupRedirectHandler(client *http.Client, followRedirects bool, maxRedirects int, log logger.Logger) error {
	if followRedirects {
		if maxRedirects < 1 {
			return log.Error("invalid maxRedirects value, must be at least 1", zap.Int("maxRedirects", maxRedirects))
		}
		redirectHandler := NewRedirectHandler(log, maxRedirects)
		redirectHandler.WithRedirectHandling(client)
		log.Debug("Redirect handling enabled", zap.Int("maxRedirects", maxRedirects))
		return nil
	}

	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	log.Debug("Redirect handling disabled, responses returned as-is")
	return nil
}
