// httpclient/config.go
// Loads and validates client configuration from the caller or from environment variables.
package httpclient

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/CharlSquash/go-solosync-client/credstore"
	"github.com/joho/godotenv"
)

const (
	DefaultLogLevelString        = "LogLevelInfo"
	DefaultLogOutputFormatString = "json"
	DefaultHideSensitiveData     = true
	DefaultMaxConcurrentRequests = 5
	DefaultCustomTimeout         = 30 * time.Second
	DefaultTokenRefreshBuffer    = 30 * time.Second
	DefaultFollowRedirects       = false
	DefaultMaxRedirects          = 5
	DefaultCookieJarEnabled      = false
)

// ClientConfig holds the options for building a Client. BaseURL is the only required
// field; everything else falls back to the defaults above.
type ClientConfig struct {
	// BaseURL is the root of the API, e.g. "https://solosync.example.com".
	BaseURL string

	// Store holds the session's token pair. Defaults to an in-memory store.
	Store credstore.Store

	// OnLogout is invoked exactly once when a token refresh is unrecoverable.
	// The external collaborator owns navigation/UI consequences. May be nil.
	OnLogout func()

	// Log
	LogLevel          string
	LogOutputFormat   string // "json" or "human-readable"
	HideSensitiveData bool

	// Cookies
	CookieJarEnabled bool
	CustomCookies    map[string]string

	// Misc
	MaxConcurrentRequests    int
	CustomTimeout            time.Duration
	TokenRefreshBufferPeriod time.Duration
	FollowRedirects          bool
	MaxRedirects             int
}

// LoadConfigFromEnv loads client configuration settings from environment variables.
// A .env file in the working directory is honored when present. Unset variables fall
// back to the default values defined in the constants.
func LoadConfigFromEnv() (*ClientConfig, error) {
	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	config := &ClientConfig{
		BaseURL:                  os.Getenv("SOLOSYNC_BASE_URL"),
		LogLevel:                 getEnvOrDefault("SOLOSYNC_LOG_LEVEL", DefaultLogLevelString),
		LogOutputFormat:          getEnvOrDefault("SOLOSYNC_LOG_OUTPUT_FORMAT", DefaultLogOutputFormatString),
		HideSensitiveData:        getEnvAsBool("SOLOSYNC_HIDE_SENSITIVE_DATA", DefaultHideSensitiveData),
		CookieJarEnabled:         getEnvAsBool("SOLOSYNC_COOKIE_JAR_ENABLED", DefaultCookieJarEnabled),
		MaxConcurrentRequests:    getEnvAsInt("SOLOSYNC_MAX_CONCURRENT_REQUESTS", DefaultMaxConcurrentRequests),
		CustomTimeout:            getEnvAsDuration("SOLOSYNC_CUSTOM_TIMEOUT", DefaultCustomTimeout),
		TokenRefreshBufferPeriod: getEnvAsDuration("SOLOSYNC_TOKEN_REFRESH_BUFFER", DefaultTokenRefreshBuffer),
		FollowRedirects:          getEnvAsBool("SOLOSYNC_FOLLOW_REDIRECTS", DefaultFollowRedirects),
		MaxRedirects:             getEnvAsInt("SOLOSYNC_MAX_REDIRECTS", DefaultMaxRedirects),
	}

	if err := validateClientConfig(config, false); err != nil {
		return nil, err
	}

	return config, nil
}

// SetDefaultValuesClientConfig fills in defaults for unset fields.
func SetDefaultValuesClientConfig(config *ClientConfig) {
	if config.Store == nil {
		config.Store = credstore.NewMemoryStore()
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevelString
	}
	if config.LogOutputFormat == "" {
		config.LogOutputFormat = DefaultLogOutputFormatString
	}
	if config.MaxConcurrentRequests < 1 {
		config.MaxConcurrentRequests = DefaultMaxConcurrentRequests
	}
	if config.CustomTimeout <= 0 {
		config.CustomTimeout = DefaultCustomTimeout
	}
	if config.TokenRefreshBufferPeriod <= 0 {
		config.TokenRefreshBufferPeriod = DefaultTokenRefreshBuffer
	}
	if config.MaxRedirects < 1 {
		config.MaxRedirects = DefaultMaxRedirects
	}
}

// validateClientConfig checks the configuration for obvious misconfiguration.
// With populateDefaults set, missing optional fields are filled in first.
func validateClientConfig(config *ClientConfig, populateDefaults bool) error {
	if populateDefaults {
		SetDefaultValuesClientConfig(config)
	}

	if config.BaseURL == "" {
		return fmt.Errorf("BaseURL is required")
	}

	parsed, err := url.Parse(config.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("BaseURL %q is not a valid http(s) URL", config.BaseURL)
	}

	if config.MaxConcurrentRequests < 1 {
		return fmt.Errorf("MaxConcurrentRequests must be at least 1")
	}

	if config.FollowRedirects && config.MaxRedirects < 1 {
		return fmt.Errorf("MaxRedirects must be at least 1 when FollowRedirects is enabled")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
