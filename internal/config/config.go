// Package config loads client configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment keys.
const (
	KeyAPIBaseURL  = "API_BASE_URL"
	KeyLogLevel    = "LOG_LEVEL"
	KeyAppEnv      = "APP_ENV"
	KeyHTTPTimeout = "HTTP_TIMEOUT"
)

// Config holds the client settings.
type Config struct {
	// APIBaseURL prefixes every request path. Empty means relative URLs.
	APIBaseURL string

	Log  LogConfig
	HTTP HTTPConfig
}

// LogConfig configures pkg/logger.
type LogConfig struct {
	Level       string
	Development bool
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	// Timeout applies to requests without a deadline of their own.
	// Zero, the default, means no timeout.
	Timeout time.Duration
}

// Load reads an optional .env file, then the environment, through v.
// Values already bound on v (for example command-line flags) take precedence.
func Load(v *viper.Viper, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v.AutomaticEnv()
	v.SetDefault(KeyAPIBaseURL, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyAppEnv, "production")
	v.SetDefault(KeyHTTPTimeout, time.Duration(0))

	return &Config{
		APIBaseURL: v.GetString(KeyAPIBaseURL),
		Log: LogConfig{
			Level:       v.GetString(KeyLogLevel),
			Development: v.GetString(KeyAppEnv) == "development",
		},
		HTTP: HTTPConfig{
			Timeout: v.GetDuration(KeyHTTPTimeout),
		},
	}, nil
}
