// httpclient/request.go
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/CharlSquash/go-solosync-client/authenticator"
	"github.com/CharlSquash/go-solosync-client/credstore"
	"github.com/CharlSquash/go-solosync-client/response"
	"github.com/CharlSquash/go-solosync-client/status"
	"go.uber.org/zap"
)

// DoRequest constructs and executes an HTTP request against the API based on the provided
// method, endpoint, request body, and output variable. It is the primary entry point for
// executing requests using the client and carries the full session behavior:
//
//   - The request body is serialized as JSON and the current access token is attached as a
//     Bearer Authorization header just before sending. Absence of a token is not an error at
//     this stage; the server's rejection is returned as-is, with no refresh attempted.
//   - A 401 response to a request that carried a token triggers the refresh coordinator:
//     however many requests fail concurrently,
//     exactly one refresh exchange is performed, and each failed request is replayed at most
//     once with the new token. A request that fails 401 again after its single replay
//     propagates the failure.
//   - When refresh is impossible or fails, both tokens are cleared, the configured logout
//     callback fires, and the refresh error is returned.
//   - All other failures pass through untouched in normalized form (response.APIError):
//     server error responses carry the server's detail message, payload and status; transport
//     failures with no response and failures before the request was sent each carry a generic
//     message. None of them are retried by this layer.
//
// Parameters:
//   - method: The HTTP method to be used for the request.
//   - endpoint: The target API endpoint, a path relative to the configured base URL.
//   - body: The payload serialized into the JSON request body. Can be nil for methods that
//     do not send a payload.
//   - out: A pointer to the variable where the deserialized response will be stored. May be
//     nil when the caller does not need the response body.
//
// Returns:
//   - *http.Response: The HTTP response received from the server. The body has been consumed
//     by success/error handling.
//   - error: A *response.APIError describing the failure, or nil.
func (c *Client) DoRequest(method, endpoint string, body, out interface{}) (*http.Response, error) {
	if !isSupportedHTTPMethod(method) {
		return nil, c.Logger.Error("HTTP method not supported", zap.String("method", method))
	}

	return c.executeRequest(context.Background(), method, endpoint, body, out)
}

// Get executes a GET request against the endpoint.
func (c *Client) Get(endpoint string, out interface{}) (*http.Response, error) {
	return c.DoRequest(http.MethodGet, endpoint, nil, out)
}

// Post executes a POST request with the given body against the endpoint.
func (c *Client) Post(endpoint string, body, out interface{}) (*http.Response, error) {
	return c.DoRequest(http.MethodPost, endpoint, body, out)
}

// Put executes a PUT request with the given body against the endpoint.
func (c *Client) Put(endpoint string, body, out interface{}) (*http.Response, error) {
	return c.DoRequest(http.MethodPut, endpoint, body, out)
}

// Delete executes a DELETE request against the endpoint.
func (c *Client) Delete(endpoint string, out interface{}) (*http.Response, error) {
	return c.DoRequest(http.MethodDelete, endpoint, nil, out)
}

// executeRequest runs the authenticated request loop: send, and on an intercepted
// authentication failure resolve a fresh token through the coordinator and replay once.
// The retried flag caps replays at exactly one per original call; the refresh endpoint
// itself is never intercepted (the exchange bypasses this path entirely).
func (c *Client) executeRequest(ctx context.Context, method, endpoint string, body, out interface{}) (*http.Response, error) {
	log := c.Logger

	bodyBytes, err := marshalRequestBody(body)
	if err != nil {
		log.Warn("Failed to marshal request body", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, response.NewSetupError(err)
	}

	c.maybeRefreshBeforeSend(ctx)

	retried := false
	for {
		// A 401 is only an expired-token failure when the request carried a token.
		// Unauthenticated calls, the login exchange included, keep the server's answer.
		_, authenticated := c.Store.Get(credstore.KeyAccessToken)

		resp, err := c.send(ctx, method, endpoint, bodyBytes)
		if err != nil {
			return nil, err
		}

		CheckDeprecationHeader(resp, log)

		if status.IsSuccessStatusCode(resp.StatusCode) {
			defer resp.Body.Close()
			return resp, response.HandleAPISuccessResponse(resp, out, log)
		}

		if status.IsAuthFailureStatusCode(resp.StatusCode) && authenticated && !retried {
			drainAndClose(resp)

			log.Debug("Authentication failure, resolving fresh token",
				zap.String("method", method), zap.String("endpoint", endpoint))

			c.Concurrency.Metrics.Lock.Lock()
			c.Concurrency.Metrics.TotalAuthFailures++
			c.Concurrency.Metrics.Lock.Unlock()

			if _, refreshErr := c.Coordinator.Resolve(ctx); refreshErr != nil {
				return nil, normalizeRefreshError(refreshErr)
			}

			// Replay with the new token; the authenticator reads it from the store.
			retried = true
			continue
		}

		defer resp.Body.Close()
		statusMessage := status.TranslateStatusCode(resp)
		log.Warn("Request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status_code", resp.StatusCode),
			zap.String("status_message", statusMessage),
		)
		return resp, response.HandleAPIErrorResponse(resp, log)
	}
}

// send performs one HTTP round trip: build, authenticate, execute. It acquires a
// concurrency permit for the duration of the call and normalizes setup and transport
// failures; the response status is left to the caller.
func (c *Client) send(ctx context.Context, method, endpoint string, bodyBytes []byte) (*http.Response, error) {
	log := c.Logger

	ctx, requestID, err := c.Concurrency.AcquireConcurrencyPermit(ctx)
	if err != nil {
		return nil, response.NewSetupError(err)
	}
	defer c.Concurrency.ReleaseConcurrencyPermit(requestID)

	url := c.endpointURL(endpoint)
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(bodyBytes))
	if err != nil {
		log.Warn("Failed to build request", zap.String("method", method), zap.String("endpoint", endpoint), zap.Error(err))
		return nil, response.NewSetupError(err)
	}
	c.setRequestHeaders(req, len(bodyBytes) > 0)

	req = c.Auth.Authenticate(req)

	startTime := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("Failed to send request", zap.String("method", method), zap.String("endpoint", endpoint), zap.Error(err))
		return nil, response.NewTransportError(method, url, err)
	}

	log.Debug("Request sent",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(startTime)),
	)

	return resp, nil
}

// maybeRefreshBeforeSend refreshes proactively when the stored access token is a JWT
// expiring inside the configured buffer period. Best effort: a failure here is not
// surfaced, the reactive 401 path stays authoritative.
func (c *Client) maybeRefreshBeforeSend(ctx context.Context) {
	token, ok := c.Store.Get(credstore.KeyAccessToken)
	if !ok {
		return
	}
	if !authenticator.ExpiresWithin(token, c.config.TokenRefreshBufferPeriod) {
		return
	}

	c.Logger.Debug("Access token inside refresh buffer, refreshing proactively")
	if _, err := c.Coordinator.Resolve(ctx); err != nil {
		c.Logger.Warn("Proactive token refresh failed", zap.Error(err))
	}
}

// marshalRequestBody serializes the request payload as JSON. A nil body yields an empty
// request body.
func marshalRequestBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	return json.Marshal(body)
}

// normalizeRefreshError shapes an unrecoverable refresh failure for the caller. Refresh
// exchange rejections already carry the normalized server message; everything else (e.g.
// a missing refresh token) is wrapped with its own message and no status.
func normalizeRefreshError(err error) *response.APIError {
	var apiErr *response.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &response.APIError{Message: err.Error(), Raw: err.Error()}
}

// drainAndClose discards the rest of the response body so the connection can be reused.
func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// isSupportedHTTPMethod checks if the given HTTP method is supported by the API client.
func isSupportedHTTPMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
