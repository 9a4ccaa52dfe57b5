// authenticator/expiry.go
package authenticator

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiryClaim is returned when the access token carries no exp claim or is not a JWT.
var ErrNoExpiryClaim = errors.New("access token has no expiry claim")

// AccessTokenExpiry extracts the expiry time from a JWT access token without verifying
// its signature. The client never validates tokens, the server does; the claim is only
// used to decide whether a refresh is worth attempting before sending a request.
func AccessTokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, ErrNoExpiryClaim
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, ErrNoExpiryClaim
	}

	return expiry.Time, nil
}

// ExpiresWithin reports whether the access token expires inside the given buffer period.
// Tokens that are not JWTs or carry no exp claim are reported as not expiring; the
// 401-driven refresh path still covers them.
func ExpiresWithin(token string, buffer time.Duration) bool {
	expiry, err := AccessTokenExpiry(token)
	if err != nil {
		return false
	}
	return time.Until(expiry) < buffer
}
