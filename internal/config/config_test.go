package config

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port too low", func(c *Config) { c.Port = 0 }, "out of range"},
		{"port too high", func(c *Config) { c.Port = 70000 }, "out of range"},
		{"unknown store", func(c *Config) { c.Store = "postgres" }, "unknown store"},
		{"surreal without endpoint", func(c *Config) { c.Store = StoreSurreal; c.SurrealURL = "" }, "no endpoint"},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "unknown log level"},
		{"empty renderer", func(c *Config) { c.Renderer = "" }, "no renderer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host, cfg.Port = "0.0.0.0", 9000
	if got := cfg.Addr(); got != "0.0.0.0:9000" {
		t.Errorf("Addr() = %q", got)
	}
}
