package config

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.LogLevel)
	}
	if cfg.BodyLimit != "1M" {
		t.Errorf("expected body limit 1M, got %s", cfg.BodyLimit)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("expected 15s timeout, got %s", cfg.RequestTimeout)
	}
	if !cfg.MetricsEnabled {
		t.Error("expected metrics enabled by default")
	}
	if diff := cmp.Diff([]string{"liver", "heart"}, cfg.ModuleIDs()); diff != "" {
		t.Errorf("ModuleIDs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MODULES", " heart , liver ")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if diff := cmp.Diff([]string{"heart", "liver"}, cfg.ModuleIDs()); diff != "" {
		t.Errorf("ModuleIDs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.CORSOrigins); diff != "" {
		t.Errorf("CORSOrigins mismatch (-want +got):\n%s", diff)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("expected rps 2.5, got %v", cfg.RateLimitRPS)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("expected 2s, got %s", cfg.RequestTimeout)
	}
	if cfg.MetricsEnabled {
		t.Error("expected metrics disabled")
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}
	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}

func TestConfig_ResolvedAuthMode(t *testing.T) {
	tests := []struct {
		env, mode, want string
	}{
		{"development", "", AuthModeDevelopment},
		{"production", "", AuthModeToken},
		{"development", AuthModeToken, AuthModeToken},
	}
	for _, tt := range tests {
		c := &Config{Env: tt.env, AuthMode: tt.mode}
		if got := c.ResolvedAuthMode(); got != tt.want {
			t.Errorf("ResolvedAuthMode(env=%s, mode=%q) = %s, want %s", tt.env, tt.mode, got, tt.want)
		}
	}
}

func validConfig() Config {
	return Config{
		Env:            "development",
		RateLimitRPS:   10,
		RateLimitBurst: 20,
		BodyLimit:      "1M",
		RequestTimeout: 15 * time.Second,
		Modules:        "liver,heart",
	}
}

func TestConfig_Validate(t *testing.T) {
	key := strings.Repeat("k", 32)
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"development defaults", func(*Config) {}, ""},
		{"token with key", func(c *Config) { c.AuthMode = AuthModeToken; c.AuthSigningKey = key }, ""},
		{"token without key", func(c *Config) { c.AuthMode = AuthModeToken }, "AUTH_SIGNING_KEY is required"},
		{"production infers token", func(c *Config) { c.Env = "production" }, "AUTH_SIGNING_KEY is required"},
		{"short key", func(c *Config) { c.AuthMode = AuthModeToken; c.AuthSigningKey = "short" }, "at least 32 bytes"},
		{"unknown mode", func(c *Config) { c.AuthMode = "oidc" }, "AUTH_MODE must be"},
		{"zero rps", func(c *Config) { c.RateLimitRPS = 0 }, "RATE_LIMIT_RPS"},
		{"zero burst", func(c *Config) { c.RateLimitBurst = 0 }, "RATE_LIMIT_BURST"},
		{"bad body limit", func(c *Config) { c.BodyLimit = "lots" }, "BODY_LIMIT"},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }, "REQUEST_TIMEOUT"},
		{"no modules", func(c *Config) { c.Modules = " , " }, "MODULES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
