// httpclient/refreshexchange.go
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/CharlSquash/go-solosync-client/response"
	"github.com/CharlSquash/go-solosync-client/version"
	"go.uber.org/zap"
)

// RefreshEndpoint is the token-refresh exchange path. Requests to it are never
// intercepted by the refresh coordinator.
const RefreshEndpoint = "/api/token/refresh/"

// refreshExchangeRequest is the wire payload presented to the refresh endpoint.
type refreshExchangeRequest struct {
	Refresh string `json:"refresh"`
}

// refreshExchangeResponse is the wire payload returned by the refresh endpoint.
type refreshExchangeResponse struct {
	Access string `json:"access"`
}

// refreshExchange performs the dedicated token-refresh call. It deliberately bypasses
// the authenticated request path: no Authorization header, no coordinator interception,
// so a rejection here can never re-enter the refresh flow. The embedded http.Client's
// timeout bounds the call, so a hung exchange cannot stall queued requests forever.
func (c *Client) refreshExchange(ctx context.Context, refreshToken string) (string, error) {
	log := c.Logger

	c.Concurrency.Metrics.Lock.Lock()
	c.Concurrency.Metrics.TotalTokenRefreshes++
	c.Concurrency.Metrics.Lock.Unlock()

	payload, err := json.Marshal(refreshExchangeRequest{Refresh: refreshToken})
	if err != nil {
		return "", response.NewSetupError(err)
	}

	url := c.endpointURL(RefreshEndpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", response.NewSetupError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.GetUserAgentHeader())

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("Refresh exchange transport failure", zap.Error(err))
		return "", response.NewTransportError(http.MethodPost, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", response.HandleAPIErrorResponse(resp, log)
	}

	var out refreshExchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", log.Error("Refresh exchange returned an unreadable body", zap.Error(err))
	}
	if out.Access == "" {
		return "", log.Error("Refresh exchange response is missing the access token")
	}

	return out.Access, nil
}
