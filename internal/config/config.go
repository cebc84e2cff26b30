// Package config resolves runtime configuration from defaults, environment
// variables, and command line flags, in that precedence order.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultHost     = "127.0.0.1"
	DefaultPort     = 8080
	DefaultLogLevel = "info"
	DefaultRenderer = "vanilla"

	// StoreMemory keeps everything in process, for development and tests.
	StoreMemory = "memory"
	// StoreSurreal persists to a SurrealDB endpoint.
	StoreSurreal = "surreal"
)

// Config holds everything the server binary needs.
type Config struct {
	Host     string
	Port     int
	BaseURL  string
	LogLevel string

	Store       string
	SurrealURL  string
	SurrealNS   string
	SurrealDB   string
	SurrealUser string
	SurrealPass string

	ResendAPIKey string
	EmailFrom    string

	OpenRouterAPIKey string
	VisionModel      string

	Renderer     string
	Theme        string
	ThemeVariant string
}

// DefaultConfig returns the development defaults: in-memory store, no email
// or AI keys, everything on localhost.
func DefaultConfig() *Config {
	return &Config{
		Host:       DefaultHost,
		Port:       DefaultPort,
		BaseURL:    fmt.Sprintf("http://%s:%d", DefaultHost, DefaultPort),
		LogLevel:   DefaultLogLevel,
		Store:      StoreMemory,
		SurrealURL: "ws://localhost:8000/rpc",
		SurrealNS:  "formpress",
		SurrealDB:  "formpress",
		EmailFrom:  "forms@localhost",
		Renderer:   DefaultRenderer,
		Theme:      "default",
	}
}

// LoadFromFlags parses flags and environment into a validated Config.
// Environment variables use the FORMPRESS_ prefix.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetEnvPrefix("FORMPRESS")
	viper.AutomaticEnv()

	defaults := map[string]any{
		"host":           cfg.Host,
		"port":           cfg.Port,
		"baseurl":        cfg.BaseURL,
		"loglevel":       cfg.LogLevel,
		"store":          cfg.Store,
		"surreal_url":    cfg.SurrealURL,
		"surreal_ns":     cfg.SurrealNS,
		"surreal_db":     cfg.SurrealDB,
		"surreal_user":   cfg.SurrealUser,
		"surreal_pass":   cfg.SurrealPass,
		"resend_api_key": cfg.ResendAPIKey,
		"email_from":     cfg.EmailFrom,
		"openrouter_key": cfg.OpenRouterAPIKey,
		"vision_model":   cfg.VisionModel,
		"renderer":       cfg.Renderer,
		"theme":          cfg.Theme,
		"theme_variant":  cfg.ThemeVariant,
	}
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	pflag.String("host", cfg.Host, "Listen address")
	pflag.Int("port", cfg.Port, "Listen port")
	pflag.String("baseurl", cfg.BaseURL, "Public base URL used in share links")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.String("store", cfg.Store, "Storage backend: memory or surreal")
	pflag.String("surreal-url", cfg.SurrealURL, "SurrealDB RPC endpoint")
	pflag.String("renderer", cfg.Renderer, "Form renderer name")
	pflag.String("theme", cfg.Theme, "Form theme name")
	pflag.String("theme-variant", cfg.ThemeVariant, "Form theme variant")

	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("baseurl", pflag.Lookup("baseurl"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("store", pflag.Lookup("store"))
	_ = viper.BindPFlag("surreal_url", pflag.Lookup("surreal-url"))
	_ = viper.BindPFlag("renderer", pflag.Lookup("renderer"))
	_ = viper.BindPFlag("theme", pflag.Lookup("theme"))
	_ = viper.BindPFlag("theme_variant", pflag.Lookup("theme-variant"))

	pflag.Parse()

	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.BaseURL = viper.GetString("baseurl")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.Store = viper.GetString("store")
	cfg.SurrealURL = viper.GetString("surreal_url")
	cfg.SurrealNS = viper.GetString("surreal_ns")
	cfg.SurrealDB = viper.GetString("surreal_db")
	cfg.SurrealUser = viper.GetString("surreal_user")
	cfg.SurrealPass = viper.GetString("surreal_pass")
	cfg.ResendAPIKey = viper.GetString("resend_api_key")
	cfg.EmailFrom = viper.GetString("email_from")
	cfg.OpenRouterAPIKey = viper.GetString("openrouter_key")
	cfg.VisionModel = viper.GetString("vision_model")
	cfg.Renderer = viper.GetString("renderer")
	cfg.Theme = viper.GetString("theme")
	cfg.ThemeVariant = viper.GetString("theme_variant")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.Store {
	case StoreMemory:
	case StoreSurreal:
		if c.SurrealURL == "" {
			return fmt.Errorf("surreal store selected but no endpoint configured")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.Renderer == "" {
		return fmt.Errorf("no renderer configured")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// Addr is the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
