// solosync/service_test.go
package solosync

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CharlSquash/go-solosync-client/credstore"
	"github.com/CharlSquash/go-solosync-client/httpclient"
	"github.com/CharlSquash/go-solosync-client/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := httpclient.BuildClient(httpclient.ClientConfig{
		BaseURL:  server.URL,
		Store:    credstore.NewMemoryStore(),
		LogLevel: "LogLevelFatal",
	}, true)
	require.NoError(t, err)

	return NewService(client), server
}

func TestLoginStoresTokenPair(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["username"] != "charl" || creds["password"] != "hunter2" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail": "No active account found with the given credentials"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access": "A1", "refresh": "R1"}`))
	})

	service, _ := newTestService(t, mux)

	require.NoError(t, service.Login("charl", "hunter2"))

	pair := credstore.ReadTokenPair(service.Client().Store)
	assert.Equal(t, "A1", pair.AccessToken)
	assert.Equal(t, "R1", pair.RefreshToken)
}

func TestLoginBadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "No active account found with the given credentials"}`))
	})

	service, _ := newTestService(t, mux)

	err := service.Login("charl", "wrong")

	require.Error(t, err)
	var apiErr *response.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "No active account found with the given credentials", apiErr.Message)

	pair := credstore.ReadTokenPair(service.Client().Store)
	assert.Empty(t, pair.AccessToken, "no tokens must be stored on a failed login")
	assert.Empty(t, pair.RefreshToken)
}

func TestLogoutClearsTokens(t *testing.T) {
	service, _ := newTestService(t, http.NewServeMux())

	credstore.WriteTokenPair(service.Client().Store, credstore.TokenPair{AccessToken: "A1", RefreshToken: "R1"})
	service.Logout()

	_, hasAccess := service.Client().Store.Get(credstore.KeyAccessToken)
	_, hasRefresh := service.Client().Store.Get(credstore.KeyRefreshToken)
	assert.False(t, hasAccess)
	assert.False(t, hasRefresh)
}

func TestListSessions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sessions/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer A1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Wall drills", "duration_minutes": 30},
			{"id": 2, "name": "Footwork ladder", "description": "High intensity"}
		]`))
	})

	service, _ := newTestService(t, mux)
	service.Client().Store.Set(credstore.KeyAccessToken, "A1")

	sessions, err := service.ListSessions()

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "Wall drills", sessions[0].Name)
	assert.Equal(t, 30, sessions[0].Duration)
	assert.Equal(t, "High intensity", sessions[1].Description)
}

func TestSubmitSessionLog(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/session-logs/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var submitted SessionLogSubmission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&submitted))
		assert.Equal(t, 1, submitted.Session)
		assert.Equal(t, 4, submitted.PhysicalRating)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(SessionLog{ID: 42, SessionLogSubmission: submitted})
	})

	service, _ := newTestService(t, mux)
	service.Client().Store.Set(credstore.KeyAccessToken, "A1")

	created, err := service.SubmitSessionLog(SessionLogSubmission{
		Session:         1,
		CompletedDate:   "2026-08-28",
		DurationMinutes: 30,
		PhysicalRating:  4,
		Notes:           "Felt strong",
	})

	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)
	assert.Equal(t, "Felt strong", created.Notes)
}

func TestListSessionLogs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/session-logs/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 7, "session": 1, "completed_date": "2026-08-27", "duration_minutes": 25}]`))
	})

	service, _ := newTestService(t, mux)
	service.Client().Store.Set(credstore.KeyAccessToken, "A1")

	logs, err := service.ListSessionLogs()

	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 7, logs[0].ID)
	assert.Equal(t, 25, logs[0].DurationMinutes)
}
