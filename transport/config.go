package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/AnkaaDesign/apiclient/auth"
	"github.com/AnkaaDesign/apiclient/observability/tracing"
)

// Deployment contexts the backend is reachable from. Each maps to a
// default base URL; an explicit BaseURL always wins.
const (
	ContextProduction = "production"
	ContextStaging    = "staging"
	ContextLocal      = "local"
	ContextLAN        = "lan"
)

var contextBaseURLs = map[string]string{
	ContextProduction: "https://api.ankaadesign.com.br",
	ContextStaging:    "https://staging-api.ankaadesign.com.br",
	ContextLocal:      "http://localhost:3030",
	ContextLAN:        "http://192.168.0.10:3030",
}

// DefaultTimeout bounds a single request round trip when the config does
// not override it.
const DefaultTimeout = 30 * time.Second

// Config holds the transport settings. The env-tagged fields are parsed
// by ConfigFromEnv; the remaining fields are wired programmatically.
type Config struct {
	// BaseURL overrides the deployment-context default when set.
	BaseURL string `env:"ANKAA_API_URL"`

	// Context selects the deployment context used to resolve the base
	// URL when BaseURL is empty.
	Context string `env:"ANKAA_API_CONTEXT" envDefault:"production"`

	// Timeout bounds each request round trip.
	Timeout time.Duration `env:"ANKAA_API_TIMEOUT" envDefault:"30s"`

	// UserAgent is sent on every request.
	UserAgent string `env:"ANKAA_API_USER_AGENT" envDefault:"ankaa-apiclient/1"`

	// Tokens supplies the bearer token per request. Nil means anonymous.
	Tokens auth.TokenSource

	// Logger receives per-request debug logs. Nil means slog.Default().
	Logger *slog.Logger

	// Tracer starts a span per request. Nil means no tracing.
	Tracer tracing.Tracer

	// HTTPClient overrides the default client, e.g. for custom
	// transports in tests. Nil builds one from Timeout.
	HTTPClient *http.Client
}

// ConfigFromEnv builds a Config from ANKAA_API_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("transport: parse env config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration before a client is built.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		if _, ok := contextBaseURLs[c.Context]; !ok {
			return fmt.Errorf("transport: unknown deployment context %q", c.Context)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("transport: timeout must not be negative")
	}
	return nil
}

// ResolveBaseURL returns the effective base URL for this configuration.
func (c Config) ResolveBaseURL() (*url.URL, error) {
	raw := c.BaseURL
	if raw == "" {
		base, ok := contextBaseURLs[c.Context]
		if !ok {
			return nil, fmt.Errorf("transport: unknown deployment context %q", c.Context)
		}
		raw = base
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("transport: invalid base URL %q: %w", raw, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("transport: base URL %q must include scheme and host", raw)
	}
	return parsed, nil
}
