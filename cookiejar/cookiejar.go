// cookiejar/cookiejar.go

/* The cookiejar package provides utility functions for managing cookies within the HTTP client.
It covers initialization of a cookie jar, applying custom cookies to all requests, and redaction
of sensitive cookie values for debug logging. */

package cookiejar

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/CharlSquash/go-solosync-client/logger"
	"go.uber.org/zap"
)

// SetupCookieJar attaches a cookie jar to the HTTP client when enabled.
func SetupCookieJar(client *http.Client, enableCookieJar bool, log logger.Logger) error {
	if enableCookieJar {
		jar, err := cookiejar.New(nil)
		if err != nil {
			log.Error("Failed to create cookie jar", zap.Error(err))
			return fmt.Errorf("setupCookieJar failed: %w", err)
		}
		client.Jar = jar
	}
	return nil
}

// ApplyCustomCookies seeds the client's jar with the provided key-value cookies for the base URL.
// The jar must already be set up; calling this without a jar is a no-op.
func ApplyCustomCookies(client *http.Client, baseURL string, cookies map[string]string, log logger.Logger) error {
	if client.Jar == nil || len(cookies) == 0 {
		return nil
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL for custom cookies: %w", err)
	}

	cookieList := make([]*http.Cookie, 0, len(cookies))
	for name, value := range cookies {
		cookieList = append(cookieList, &http.Cookie{Name: name, Value: value})
	}
	client.Jar.SetCookies(parsed, cookieList)

	// Redact copies; the jar keeps the real values.
	logged := make([]*http.Cookie, 0, len(cookieList))
	for _, cookie := range cookieList {
		copied := *cookie
		logged = append(logged, &copied)
	}
	for _, cookie := range RedactSensitiveCookies(logged) {
		log.Debug("Custom cookie applied",
			zap.String("name", cookie.Name),
			zap.String("value", cookie.Value),
		)
	}
	return nil
}

// RedactSensitiveCookies replaces the values of session cookies before they are logged.
func RedactSensitiveCookies(cookies []*http.Cookie) []*http.Cookie {
	sensitiveCookieNames := map[string]bool{
		"sessionid": true,
	}

	for _, cookie := range cookies {
		if _, found := sensitiveCookieNames[cookie.Name]; found {
			cookie.Value = "REDACTED"
		}
	}

	return cookies
}
