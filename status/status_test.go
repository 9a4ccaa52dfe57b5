// status/status_test.go
package status

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAuthFailureStatusCode(t *testing.T) {
	assert.True(t, IsAuthFailureStatusCode(http.StatusUnauthorized))
	assert.False(t, IsAuthFailureStatusCode(http.StatusForbidden), "403 is not recoverable by a token refresh")
	assert.False(t, IsAuthFailureStatusCode(http.StatusInternalServerError))
}

func TestIsSuccessStatusCode(t *testing.T) {
	assert.True(t, IsSuccessStatusCode(http.StatusOK))
	assert.True(t, IsSuccessStatusCode(http.StatusNoContent))
	assert.False(t, IsSuccessStatusCode(http.StatusMovedPermanently))
	assert.False(t, IsSuccessStatusCode(http.StatusUnauthorized))
}

func TestIsRedirectStatusCode(t *testing.T) {
	assert.True(t, IsRedirectStatusCode(http.StatusFound))
	assert.True(t, IsRedirectStatusCode(http.StatusPermanentRedirect))
	assert.False(t, IsRedirectStatusCode(http.StatusOK))
}

func TestIsServerErrorStatusCode(t *testing.T) {
	assert.True(t, IsServerErrorStatusCode(http.StatusInternalServerError))
	assert.True(t, IsServerErrorStatusCode(http.StatusServiceUnavailable))
	assert.False(t, IsServerErrorStatusCode(http.StatusUnauthorized))
}

func TestTranslateStatusCode(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusUnauthorized}
	assert.Equal(t, "Authentication failure. Verify the access token is valid", TranslateStatusCode(resp))

	assert.Equal(t, "No response received", TranslateStatusCode(nil))
	assert.Equal(t, "Undocumented response code", TranslateStatusCode(&http.Response{StatusCode: 418}))
}
