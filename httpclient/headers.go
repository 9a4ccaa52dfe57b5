// httpclient/headers.go
package httpclient

import (
	"net/http"
	"strings"

	"github.com/CharlSquash/go-solosync-client/authenticator"
	"github.com/CharlSquash/go-solosync-client/logger"
	"github.com/CharlSquash/go-solosync-client/version"
	"go.uber.org/zap"
)

// setRequestHeaders sets the standard headers for an outgoing API request.
// The Authorization header is not set here; that is the authenticator's job.
func (c *Client) setRequestHeaders(req *http.Request, hasBody bool) {
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.GetUserAgentHeader())

	c.logHeaders(req)
}

// logHeaders prints the request headers at debug level, redacting sensitive values
// based on the HideSensitiveData configuration flag.
func (c *Client) logHeaders(req *http.Request) {
	if c.Logger.GetLogLevel() > logger.LogLevelDebug {
		return
	}

	redactedHeaders := http.Header{}
	for name, values := range req.Header {
		if len(values) > 0 {
			redactedValue := authenticator.RedactSensitiveHeaderData(c.config.HideSensitiveData, name, values[0])
			redactedHeaders.Set(name, redactedValue)
		}
	}

	c.Logger.Debug("HTTP Request Headers", zap.String("Headers", headersToString(redactedHeaders)))
}

// headersToString converts a http.Header to a string for logging,
// one header per line.
func headersToString(headers http.Header) string {
	var headerStrings []string
	for name, values := range headers {
		headerStrings = append(headerStrings, name+": "+strings.Join(values, ", "))
	}
	return strings.Join(headerStrings, "\n")
}

// CheckDeprecationHeader warns when the server marks the endpoint as deprecated.
func CheckDeprecationHeader(resp *http.Response, log logger.Logger) {
	deprecationHeader := resp.Header.Get("Deprecation")
	if deprecationHeader != "" {
		log.Warn("API endpoint is deprecated",
			zap.String("Date", deprecationHeader),
			zap.String("Endpoint", resp.Request.URL.String()),
		)
	}
}
