package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (backend URL), secrets
// - default: Values common across all environments (timeouts, intervals, log format)
// -----------------------------------------------------------------------------

type Config struct {
	Remote RemoteConfig
	Auth   AuthConfig
	Cache  CacheConfig
	Server ServerConfig
	CORS   CORSConfig
	Log    LogConfig
}

type RemoteConfig struct {
	BaseURL   string        `envconfig:"REMOTE_BASE_URL" required:"true"`
	Timeout   time.Duration `envconfig:"REMOTE_TIMEOUT" default:"10s"`
	RateLimit float64       `envconfig:"REMOTE_RATE_LIMIT" default:"20"` // requests per second, 0 disables
	RateBurst int           `envconfig:"REMOTE_RATE_BURST" default:"10"`
	UserAgent string        `envconfig:"REMOTE_USER_AGENT" default:"market-client/1.0"`
}

// Session credentials are issued elsewhere; the client only carries them.
type AuthConfig struct {
	Token         string `envconfig:"AUTH_TOKEN"`
	SessionCookie string `envconfig:"AUTH_SESSION_COOKIE"`
	CookieName    string `envconfig:"AUTH_COOKIE_NAME" default:"sAccessToken"`
}

type CacheConfig struct {
	PollInterval     time.Duration `envconfig:"CACHE_POLL_INTERVAL" default:"30s"` // 0 disables polling
	KeepPreviousData bool          `envconfig:"CACHE_KEEP_PREVIOUS_DATA" default:"true"`
}

type ServerConfig struct {
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	Format         string `envconfig:"LOG_FORMAT" default:"json"` // json or text
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Shanghai"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"28800"` // 8*60*60
}

func (c *RemoteConfig) ParseBaseURL() (*url.URL, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REMOTE_BASE_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid REMOTE_BASE_URL scheme %q", u.Scheme)
	}
	return u, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if _, err := cfg.Remote.ParseBaseURL(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig(baseURL string) Config {
	return Config{
		Remote: RemoteConfig{
			BaseURL:   baseURL,
			Timeout:   2 * time.Second,
			RateLimit: 0, // unlimited in tests
			UserAgent: "market-client/test",
		},
		Auth: AuthConfig{
			CookieName: "sAccessToken",
		},
		Cache: CacheConfig{
			PollInterval:     0,
			KeepPreviousData: true,
		},
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			Format:         "text",
			TimeZone:       "Asia/Shanghai",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 28800,
		},
	}
}
