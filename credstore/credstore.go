// credstore/credstore.go
/* The credstore package defines the credential store contract used by the client to hold the
current access and refresh tokens. The store owns the token pair; the refresh coordinator reads
and replaces tokens through this interface but never persists them anywhere else. Implementations
are expected to be safe for concurrent use. */
package credstore

const (
	// KeyAccessToken is the store key under which the short-lived access token is held.
	KeyAccessToken = "access-token"
	// KeyRefreshToken is the store key under which the longer-lived refresh token is held.
	KeyRefreshToken = "refresh-token"
)

// Store holds the current access and refresh tokens for one logical session.
type Store interface {
	// Get returns the value for key and whether it is present. An empty stored
	// value is reported as absent.
	Get(key string) (string, bool)
	// Set stores value under key, replacing any previous value.
	Set(key, value string)
	// Clear removes the value stored under key.
	Clear(key string)
}

// TokenPair is a convenience snapshot of the two credentials owned by a Store.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ReadTokenPair returns the current token pair from the store. Absent tokens
// are returned as empty strings.
func ReadTokenPair(s Store) TokenPair {
	access, _ := s.Get(KeyAccessToken)
	refresh, _ := s.Get(KeyRefreshToken)
	return TokenPair{AccessToken: access, RefreshToken: refresh}
}

// WriteTokenPair stores both tokens of the pair.
func WriteTokenPair(s Store, pair TokenPair) {
	s.Set(KeyAccessToken, pair.AccessToken)
	s.Set(KeyRefreshToken, pair.RefreshToken)
}

// ClearTokenPair removes both tokens from the store.
func ClearTokenPair(s Store) {
	s.Clear(KeyAccessToken)
	s.Clear(KeyRefreshToken)
}
