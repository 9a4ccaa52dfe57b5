// status/status.go
// Classifies HTTP response status codes into the outcome classes the client acts on.
package status

import (
	"net/http"
)

// IsSuccessStatusCode checks if the provided HTTP status code indicates success.
func IsSuccessStatusCode(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// IsAuthFailureStatusCode checks if the provided HTTP status code is the
// authentication-failure class the refresh coordinator intercepts. Only 401 counts:
// 403 means the credentials are valid but insufficient, which a refresh cannot fix.
func IsAuthFailureStatusCode(statusCode int) bool {
	return statusCode == http.StatusUnauthorized
}

// IsRedirectStatusCode reports whether the status code is a redirect.
// Redirect status codes instruct the client to make a new request to a different URI,
// as defined in the response's Location header.
func IsRedirectStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// IsPermanentRedirect reports whether the status code is a permanent redirect.
func IsPermanentRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// IsServerErrorStatusCode checks if the provided HTTP status code is a 5xx server error.
// These are surfaced to the caller untouched; this client layer never retries them.
func IsServerErrorStatusCode(statusCode int) bool {
	return statusCode >= 500 && statusCode < 600
}

// TranslateStatusCode returns a human-readable message for the status code of the response.
func TranslateStatusCode(resp *http.Response) string {
	if resp == nil {
		return "No response received"
	}

	messages := map[int]string{
		http.StatusOK:                  "Request successful",
		http.StatusCreated:             "Request to create or update resource successful",
		http.StatusAccepted:            "The request was accepted for processing, but the processing has not completed",
		http.StatusNoContent:           "Request successful. Response is empty",
		http.StatusBadRequest:          "Bad request. Verify the syntax of the request",
		http.StatusUnauthorized:        "Authentication failure. Verify the access token is valid",
		http.StatusForbidden:           "Invalid permissions. Verify the account being used has the proper permissions for the resource you are trying to access",
		http.StatusNotFound:            "Resource not found",
		http.StatusConflict:            "Conflict with the current state of the resource",
		http.StatusTooManyRequests:     "Too many requests. Slow down and try again later",
		http.StatusInternalServerError: "Internal server error. Retry the request or contact support if the error persists",
		http.StatusBadGateway:          "Bad gateway. Usually a transient upstream issue",
		http.StatusServiceUnavailable:  "Service unavailable",
	}

	if message, ok := messages[resp.StatusCode]; ok {
		return message
	}
	return "Undocumented response code"
}
