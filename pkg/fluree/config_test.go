package fluree

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestConfigFromEnv(t *testing.T) {
	config, err := ConfigFromEnv(map[string]string{
		EnvAPIToken: " token-123 ",
		EnvHandle:   "acme",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.APIToken != "token-123" || config.TenantHandle != "acme" {
		t.Fatalf("unexpected config: %s", config)
	}
	if config.BaseURL != DefaultBaseURL {
		t.Fatalf("unexpected base URL: %s", config.BaseURL)
	}
}

func TestConfigFromEnvBaseURLOverride(t *testing.T) {
	config, err := ConfigFromEnv(map[string]string{
		EnvAPIToken: "token",
		EnvHandle:   "acme",
		EnvBaseURL:  "http://localhost:58090/",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.BaseURL != "http://localhost:58090/" {
		t.Fatalf("unexpected base URL: %s", config.BaseURL)
	}
}

func TestConfigFromEnvMissing(t *testing.T) {
	cases := []struct {
		name    string
		environ map[string]string
		missing []string
		message string
	}{
		{
			name:    "both",
			environ: map[string]string{},
			missing: []string{EnvAPIToken, EnvHandle},
			message: "missing environment variables: FLUREE_API_TOKEN, FLUREE_HANDLE",
		},
		{
			name:    "token",
			environ: map[string]string{EnvHandle: "acme"},
			missing: []string{EnvAPIToken},
			message: "missing environment variables: FLUREE_API_TOKEN",
		},
		{
			name:    "handle",
			environ: map[string]string{EnvAPIToken: "token", EnvHandle: "   "},
			missing: []string{EnvHandle},
			message: "missing environment variables: FLUREE_HANDLE",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ConfigFromEnv(tc.environ)
			var configErr *ConfigurationError
			if !errors.As(err, &configErr) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if !reflect.DeepEqual(configErr.Missing, tc.missing) {
				t.Fatalf("unexpected missing names: %v", configErr.Missing)
			}
			if configErr.Error() != tc.message {
				t.Fatalf("unexpected message: %q", configErr.Error())
			}
		})
	}
}

func TestConfigValidateBaseURL(t *testing.T) {
	for _, base := range []string{"ftp://data.flur.ee", "https://", "data.flur.ee"} {
		err := Config{APIToken: "token", TenantHandle: "acme", BaseURL: base}.Validate()
		var configErr *ConfigurationError
		if !errors.As(err, &configErr) {
			t.Fatalf("expected ConfigurationError for %q, got %v", base, err)
		}
	}
}

func TestConfigWithOverrides(t *testing.T) {
	base := Config{APIToken: "token", TenantHandle: "acme", BaseURL: DefaultBaseURL}
	updated := base.WithOverrides("", "other", " ")
	if updated.APIToken != "token" || updated.TenantHandle != "other" || updated.BaseURL != DefaultBaseURL {
		t.Fatalf("unexpected overrides: %s", updated)
	}
	if base.TenantHandle != "acme" {
		t.Fatal("original config was modified")
	}
}

func TestConfigStringRedactsToken(t *testing.T) {
	config := Config{APIToken: "super-secret", TenantHandle: "acme"}
	if strings.Contains(config.String(), "super-secret") {
		t.Fatalf("token leaked: %s", config.String())
	}
}

func TestLoadConfigOverridesFillMissing(t *testing.T) {
	config, err := LoadConfig(map[string]string{EnvHandle: "acme"}, Config{APIToken: "flag-token", BaseURL: "http://localhost:8090"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.APIToken != "flag-token" || config.TenantHandle != "acme" || config.BaseURL != "http://localhost:8090" {
		t.Fatalf("unexpected config: %s", config)
	}
}
