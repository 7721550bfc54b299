// Package config provides hierarchical configuration loading for docsmith.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the docsmith service.
type Config struct {
	Server     Server     `yaml:"server"`
	Logging    Logging    `yaml:"logging"`
	Auth       Auth       `yaml:"auth"`
	Groq       Groq       `yaml:"groq"`
	Agno       Agno       `yaml:"agno"`
	Generation Generation `yaml:"generation"`
	Cache      Cache      `yaml:"cache"`
	Breaker    Breaker    `yaml:"breaker"`
	Otel       Otel       `yaml:"otel"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// Auth holds API key authentication configuration. With no keys
// configured, authentication is disabled.
type Auth struct {
	APIKeys []string `yaml:"api_keys"`
}

// Groq holds Groq API connection configuration.
type Groq struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Agno holds agent runtime connection configuration. The runtime proxies
// the openai, anthropic and local providers.
type Agno struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Generation holds document generation pipeline configuration.
type Generation struct {
	DefaultMaxTokens int     `yaml:"default_max_tokens"`
	MaxContentLength int     `yaml:"max_content_length"`
	QualityThreshold float64 `yaml:"quality_threshold"`
}

// Cache holds in-process validation cache configuration.
type Cache struct {
	Enabled      bool          `yaml:"enabled"`
	MaxCostBytes int64         `yaml:"max_cost_bytes"`
	TTL          time.Duration `yaml:"ttl"`
}

// Breaker holds circuit breaker configuration for provider calls.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Cooldown    time.Duration `yaml:"cooldown"`
}

// Otel holds OpenTelemetry exporter configuration.
type Otel struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8000",
			CORSOrigin: "*",
		},
		Logging: Logging{
			Level:   "info",
			Service: "docsmith",
		},
		Groq: Groq{
			Timeout: 60 * time.Second,
		},
		Agno: Agno{
			BaseURL: "http://localhost:7777",
			Timeout: 120 * time.Second,
		},
		Generation: Generation{
			DefaultMaxTokens: 4000,
			MaxContentLength: 50000,
			QualityThreshold: 0.7,
		},
		Cache: Cache{
			Enabled:      true,
			MaxCostBytes: 32 << 20,
			TTL:          10 * time.Minute,
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Cooldown:    30 * time.Second,
		},
		Otel: Otel{
			Enabled:  false,
			Endpoint: "localhost:4317",
		},
	}
}
