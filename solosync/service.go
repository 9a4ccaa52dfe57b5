// solosync/service.go
// The solosync package exposes one typed method per logical SoloSync API action on top
// of the session client. Each method returns either a decoded success value or a
// normalized *response.APIError with message, optional server payload and status code.
package solosync

import (
	"github.com/CharlSquash/go-solosync-client/credstore"
	"github.com/CharlSquash/go-solosync-client/httpclient"
)

const (
	tokenObtainEndpoint = "/api/token/"
	sessionsEndpoint    = "/api/sessions/"
	sessionLogsEndpoint = "/api/session-logs/"
)

// Service wraps a session client with the SoloSync API's typed operations.
type Service struct {
	client *httpclient.Client
}

// NewService creates a Service around an already-built session client.
func NewService(client *httpclient.Client) *Service {
	return &Service{client: client}
}

// Client returns the underlying session client.
func (s *Service) Client() *httpclient.Client {
	return s.client
}

// Login exchanges the user's credentials for a token pair and stores it, establishing
// the session every subsequent call runs under.
func (s *Service) Login(username, password string) error {
	var tokens loginResponse
	_, err := s.client.Post(tokenObtainEndpoint, loginRequest{Username: username, Password: password}, &tokens)
	if err != nil {
		return err
	}

	credstore.WriteTokenPair(s.client.Store, credstore.TokenPair{
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
	})
	return nil
}

// Logout discards the stored token pair. Voluntary, client-side only: the server is
// not notified, the tokens simply age out.
func (s *Service) Logout() {
	credstore.ClearTokenPair(s.client.Store)
}

// ListSessions returns the practice sessions available to the logged-in user.
func (s *Service) ListSessions() ([]Session, error) {
	var sessions []Session
	if _, err := s.client.Get(sessionsEndpoint, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// SubmitSessionLog records a completed practice session and returns the stored log.
func (s *Service) SubmitSessionLog(submission SessionLogSubmission) (*SessionLog, error) {
	var created SessionLog
	if _, err := s.client.Post(sessionLogsEndpoint, submission, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListSessionLogs returns the logs the user has recorded.
func (s *Service) ListSessionLogs() ([]SessionLog, error) {
	var logs []SessionLog
	if _, err := s.client.Get(sessionLogsEndpoint, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
