package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "skyvia"

// Environment variable names, referenced from tests and error messages.
const (
	EnvAPIToken    = "SKYVIA_API_TOKEN"
	EnvBaseURL     = "SKYVIA_BASE_URL"
	EnvHTTPTimeout = "SKYVIA_HTTP_TIMEOUT"
	EnvLogLevel    = "SKYVIA_LOG_LEVEL"
)

// Server metadata reported over the MCP handshake.
const (
	ServerName    = "Skyvia MCP Server"
	ServerVersion = "0.1.0"
)

type Config struct {
	App AppConfig
	API APIConfig
}

type AppConfig struct {
	LogLevel string `envconfig:"SKYVIA_LOG_LEVEL" default:"info"`
}

type APIConfig struct {
	// BaseURL is the fixed base origin every request path is resolved
	// against. The credential itself is owned by skyvia.TokenSource,
	// not the config.
	BaseURL string        `envconfig:"SKYVIA_BASE_URL" default:"https://api.skyvia.com"`
	Timeout time.Duration `envconfig:"SKYVIA_HTTP_TIMEOUT" default:"30s"`
}

func Load() (*Config, error) {
	// An exported-but-empty variable means "use the default"; envconfig
	// would otherwise try to parse the empty string.
	for _, key := range []string{EnvBaseURL, EnvHTTPTimeout, EnvLogLevel} {
		if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) == "" {
			os.Unsetenv(key)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (a *APIConfig) normalize() error {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", EnvBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s: %q must be an absolute URL", EnvBaseURL, a.BaseURL)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("invalid %s: timeout must be positive", EnvHTTPTimeout)
	}
	return nil
}
