// authenticator/authenticator.go
/* The authenticator package attaches the current access token to outgoing requests. It is a pure
step with no failure mode: when no access token is stored the request is passed through unchanged
and the server is left to reject the call. */
package authenticator

import (
	"net/http"
	"strings"

	"github.com/CharlSquash/go-solosync-client/credstore"
)

// RequestAuthenticator attaches the stored access token as a Bearer Authorization header.
type RequestAuthenticator struct {
	store credstore.Store
}

// New creates a RequestAuthenticator reading from the given credential store.
func New(store credstore.Store) *RequestAuthenticator {
	return &RequestAuthenticator{store: store}
}

// Authenticate returns a clone of req with the Authorization header set to the current
// access token, or the clone unchanged if no access token is present. The original
// request is never mutated.
func (a *RequestAuthenticator) Authenticate(req *http.Request) *http.Request {
	cloned := req.Clone(req.Context())

	token, ok := a.store.Get(credstore.KeyAccessToken)
	if !ok {
		return cloned
	}

	SetAuthorization(cloned, token)
	return cloned
}

// SetAuthorization sets the Authorization header for the request.
func SetAuthorization(req *http.Request, token string) {
	// Ensure the token is prefixed with "Bearer " only once
	if !strings.HasPrefix(token, "Bearer ") {
		token = "Bearer " + token
	}
	req.Header.Set("Authorization", token)
}

// RedactSensitiveHeaderData redacts sensitive data based on the hideSensitiveData flag.
func RedactSensitiveHeaderData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData {
		sensitiveKeys := map[string]bool{
			"Authorization": true,
			"Cookie":        true,
			"Set-Cookie":    true,
		}

		if _, found := sensitiveKeys[key]; found {
			return "REDACTED"
		}
	}
	return value
}
