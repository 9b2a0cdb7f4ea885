package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/daytrack/daytrack/client/internal/tokenstore"
)

// Config holds the environment-driven client configuration. Variables are
// parsed from the DAYTRACK_ prefix.
type Config struct {
	// ServiceURL is the base URL of the remote activity store.
	ServiceURL string `envconfig:"SERVICE_URL" default:"http://localhost:5000"`

	// HTTPTimeout bounds each store request end to end.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// RegisterDelay is the registration flow's minimum visible duration.
	RegisterDelay time.Duration `envconfig:"REGISTER_DELAY" default:"3s"`

	// TokenPath overrides where the session token is stored. Empty means
	// the per-user config directory.
	TokenPath string `envconfig:"TOKEN_PATH" default:""`

	// RetryAttempts bounds the read-path retry loop, first try included.
	RetryAttempts int `envconfig:"RETRY_ATTEMPTS" default:"3"`
}

// LoadConfig reads the DAYTRACK_* environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("daytrack", &cfg); err != nil {
		return Config{}, fmt.Errorf("client: parse environment: %w", err)
	}
	return cfg, nil
}

// NewFromEnv builds a Client from the environment. Explicit options are
// applied after the environment and win on conflict.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithHTTPTimeout(cfg.HTTPTimeout),
		WithRegisterDelay(cfg.RegisterDelay),
		WithRetry(cfg.RetryAttempts),
	}
	if cfg.TokenPath != "" {
		base = append(base, WithTokenStore(tokenstore.NewFileStore(cfg.TokenPath)))
	}
	return New(cfg.ServiceURL, append(base, opts...)...)
}
