package fluree

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DefaultBaseURL is used when neither an override nor FLUREE_BASE_URL is set.
// The Env* names are the variables read by LoadConfig.
const (
	DefaultBaseURL = "https://data.flur.ee"

	EnvAPIToken = "FLUREE_API_TOKEN"
	EnvHandle   = "FLUREE_HANDLE"
	EnvBaseURL  = "FLUREE_BASE_URL"
)

// Config holds the credentials and endpoint used by Client. It is treated as
// an immutable value once built.
type Config struct {
	APIToken     string
	TenantHandle string
	BaseURL      string
}

type configEnv struct {
	APIToken     string `env:"FLUREE_API_TOKEN"`
	TenantHandle string `env:"FLUREE_HANDLE"`
	BaseURL      string `env:"FLUREE_BASE_URL"`
}

// ConfigFromEnv builds a Config from environment variables. When environ is
// nil the process environment is used; tests pass an explicit map.
func ConfigFromEnv(environ map[string]string) (Config, error) {
	return LoadConfig(environ, Config{})
}

// LoadConfig reads the environment like ConfigFromEnv, then applies the
// non-empty fields of overrides before validating.
func LoadConfig(environ map[string]string, overrides Config) (Config, error) {
	var raw configEnv
	if err := env.ParseWithOptions(&raw, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse fluree environment: %w", err)
	}

	config := Config{
		APIToken:     strings.TrimSpace(raw.APIToken),
		TenantHandle: strings.TrimSpace(raw.TenantHandle),
		BaseURL:      strings.TrimSpace(raw.BaseURL),
	}.WithOverrides(overrides.APIToken, overrides.TenantHandle, overrides.BaseURL)
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate reports every missing required value in a single
// *ConfigurationError.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.APIToken) == "" {
		missing = append(missing, EnvAPIToken)
	}
	if strings.TrimSpace(c.TenantHandle) == "" {
		missing = append(missing, EnvHandle)
	}
	if len(missing) > 0 {
		return newMissingConfigurationError(missing)
	}

	base := c.BaseURL
	if strings.TrimSpace(base) == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return &ConfigurationError{Message: fmt.Sprintf("invalid fluree base URL %q: %v", base, err)}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ConfigurationError{Message: fmt.Sprintf("invalid fluree base URL %q: scheme must be http or https", base)}
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return &ConfigurationError{Message: fmt.Sprintf("invalid fluree base URL %q: host is required", base)}
	}
	return nil
}

// WithOverrides returns a copy with the non-empty overrides applied.
func (c Config) WithOverrides(apiToken, tenantHandle, baseURL string) Config {
	clone := c
	if value := strings.TrimSpace(apiToken); value != "" {
		clone.APIToken = value
	}
	if value := strings.TrimSpace(tenantHandle); value != "" {
		clone.TenantHandle = value
	}
	if value := strings.TrimSpace(baseURL); value != "" {
		clone.BaseURL = value
	}
	return clone
}

// String hides the API token.
func (c Config) String() string {
	token := "<unset>"
	if c.APIToken != "" {
		token = "<redacted>"
	}
	return fmt.Sprintf("fluree.Config{TenantHandle:%q BaseURL:%q APIToken:%s}", c.TenantHandle, c.BaseURL, token)
}
