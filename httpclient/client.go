// httpclient/client.go
/* The httpclient package provides the session client for the SoloSync API: an HTTP client
facade that attaches the current access token to every request, intercepts expired-access-token
failures, performs at most one concurrent token refresh exchange, and replays waiting requests
once a new token is obtained. Unrecoverable refresh failures clear the stored token pair and
invoke the configured logout callback. The main Client structure composes the credential store,
request authenticator, refresh coordinator, concurrency handler and an embedded standard HTTP
client. */
package httpclient

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/CharlSquash/go-solosync-client/authenticator"
	"github.com/CharlSquash/go-solosync-client/concurrency"
	"github.com/CharlSquash/go-solosync-client/cookiejar"
	"github.com/CharlSquash/go-solosync-client/credstore"
	"github.com/CharlSquash/go-solosync-client/logger"
	"github.com/CharlSquash/go-solosync-client/redirecthandler"
	"github.com/CharlSquash/go-solosync-client/refresh"
	"go.uber.org/zap"
)

// Master struct/object
type Client struct {
	// Private
	config  ClientConfig
	http    *http.Client
	baseURL string

	// Exported
	Store       credstore.Store
	Auth        *authenticator.RequestAuthenticator
	Coordinator *refresh.Coordinator
	Logger      logger.Logger
	Concurrency *concurrency.ConcurrencyHandler
}

// BuildClient creates a new session client with the provided configuration.
func BuildClient(config ClientConfig, populateDefaultValues bool) (*Client, error) {

	err := validateClientConfig(&config, populateDefaultValues)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	parsedLogLevel := logger.ParseLogLevelFromString(config.LogLevel)
	log := logger.BuildLogger(parsedLogLevel, config.LogOutputFormat)
	log.SetLevel(parsedLogLevel)

	log.Info("initializing new solosync client", zap.String("base_url", config.BaseURL))

	httpClient := &http.Client{
		Timeout: config.CustomTimeout,
	}

	if err := redirecthandler.SetupRedirectHandler(httpClient, config.FollowRedirects, config.MaxRedirects, log); err != nil {
		log.Error("Failed to set up redirect handler", zap.Error(err))
		return nil, err
	}

	if err := cookiejar.SetupCookieJar(httpClient, config.CookieJarEnabled, log); err != nil {
		log.Error("Failed to set up cookie jar", zap.Error(err))
		return nil, err
	}
	if err := cookiejar.ApplyCustomCookies(httpClient, config.BaseURL, config.CustomCookies, log); err != nil {
		log.Error("Failed to apply custom cookies", zap.Error(err))
		return nil, err
	}

	concurrencyMetrics := &concurrency.ConcurrencyMetrics{}
	concurrencyHandler := concurrency.NewConcurrencyHandler(
		config.MaxConcurrentRequests,
		log,
		concurrencyMetrics,
	)

	client := &Client{
		config:      config,
		http:        httpClient,
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		Store:       config.Store,
		Auth:        authenticator.New(config.Store),
		Logger:      log,
		Concurrency: concurrencyHandler,
	}

	// The exchange call goes straight through the embedded http.Client; it must never
	// route back through the intercepting request path.
	client.Coordinator = refresh.NewCoordinator(config.Store, client.refreshExchange, config.OnLogout, log)

	log.Debug("New session client initialized",
		zap.String("Base URL", config.BaseURL),
		zap.String("Logging Level", config.LogLevel),
		zap.String("Log Encoding Format", config.LogOutputFormat),
		zap.Bool("Hide Sensitive Data In Logs", config.HideSensitiveData),
		zap.Bool("Cookie Jar Enabled", config.CookieJarEnabled),
		zap.Int("Max Concurrent Requests", config.MaxConcurrentRequests),
		zap.Bool("Follow Redirects", config.FollowRedirects),
		zap.Int("Max Redirects", config.MaxRedirects),
		zap.Duration("Token Refresh Buffer Period", config.TokenRefreshBufferPeriod),
		zap.Duration("Custom Timeout", config.CustomTimeout),
	)

	return client, nil
}

// BaseURL returns the configured API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpointURL joins the base URL with a relative endpoint path.
func (c *Client) endpointURL(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}
