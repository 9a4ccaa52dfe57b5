// cookiejar/cookiejar_test.go
package cookiejar

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/CharlSquash/go-solosync-client/logger"
	"github.com/CharlSquash/go-solosync-client/mocklogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetupCookieJar(t *testing.T) {
	client := &http.Client{}

	require.NoError(t, SetupCookieJar(client, true, logger.NewNopLogger()))
	assert.NotNil(t, client.Jar)

	client = &http.Client{}
	require.NoError(t, SetupCookieJar(client, false, logger.NewNopLogger()))
	assert.Nil(t, client.Jar)
}

func TestApplyCustomCookies(t *testing.T) {
	client := &http.Client{}
	require.NoError(t, SetupCookieJar(client, true, logger.NewNopLogger()))

	err := ApplyCustomCookies(client, "http://example.com", map[string]string{"locale": "en"}, logger.NewNopLogger())
	require.NoError(t, err)

	base, _ := url.Parse("http://example.com")
	cookies := client.Jar.Cookies(base)
	require.Len(t, cookies, 1)
	assert.Equal(t, "locale", cookies[0].Name)
	assert.Equal(t, "en", cookies[0].Value)
}

func TestApplyCustomCookiesWithoutJarIsNoOp(t *testing.T) {
	client := &http.Client{}
	assert.NoError(t, ApplyCustomCookies(client, "http://example.com", map[string]string{"a": "b"}, logger.NewNopLogger()))
}

func TestApplyCustomCookiesRedactsLoggedValues(t *testing.T) {
	client := &http.Client{}
	require.NoError(t, SetupCookieJar(client, true, logger.NewNopLogger()))

	log := mocklogger.NewMockLogger()
	log.On("Debug", "Custom cookie applied", mock.MatchedBy(func(fields []zap.Field) bool {
		return len(fields) == 2 && fields[1].String == "REDACTED"
	})).Once()

	err := ApplyCustomCookies(client, "http://example.com", map[string]string{"sessionid": "secret"}, log)
	require.NoError(t, err)
	log.AssertExpectations(t)

	// The jar must keep the real value; only the log line is redacted.
	base, _ := url.Parse("http://example.com")
	cookies := client.Jar.Cookies(base)
	require.Len(t, cookies, 1)
	assert.Equal(t, "secret", cookies[0].Value)
}

func TestRedactSensitiveCookies(t *testing.T) {
	cookies := []*http.Cookie{
		{Name: "sessionid", Value: "secret"},
		{Name: "locale", Value: "en"},
	}

	redacted := RedactSensitiveCookies(cookies)
	assert.Equal(t, "REDACTED", redacted[0].Value)
	assert.Equal(t, "en", redacted[1].Value)
}
