package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "docsmith.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "DOCSMITH_PORT")
	setString(&cfg.Server.CORSOrigin, "DOCSMITH_CORS_ORIGIN")
	setString(&cfg.Logging.Level, "DOCSMITH_LOG_LEVEL")
	setString(&cfg.Logging.Service, "DOCSMITH_LOG_SERVICE")
	setStrings(&cfg.Auth.APIKeys, "DOCSMITH_API_KEYS")
	setString(&cfg.Groq.APIKey, "GROQ_API_KEY")
	setString(&cfg.Groq.BaseURL, "GROQ_BASE_URL")
	setDuration(&cfg.Groq.Timeout, "DOCSMITH_GROQ_TIMEOUT")
	setString(&cfg.Agno.BaseURL, "AGNO_BASE_URL")
	setString(&cfg.Agno.APIKey, "AGNO_API_KEY")
	setDuration(&cfg.Agno.Timeout, "DOCSMITH_AGNO_TIMEOUT")
	setInt(&cfg.Generation.DefaultMaxTokens, "DOCSMITH_DEFAULT_MAX_TOKENS")
	setInt(&cfg.Generation.MaxContentLength, "DOCSMITH_MAX_CONTENT_LENGTH")
	setFloat64(&cfg.Generation.QualityThreshold, "DOCSMITH_QUALITY_THRESHOLD")
	setBool(&cfg.Cache.Enabled, "DOCSMITH_CACHE_ENABLED")
	setInt64(&cfg.Cache.MaxCostBytes, "DOCSMITH_CACHE_MAX_COST_BYTES")
	setDuration(&cfg.Cache.TTL, "DOCSMITH_CACHE_TTL")
	setInt(&cfg.Breaker.MaxFailures, "DOCSMITH_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Cooldown, "DOCSMITH_BREAKER_COOLDOWN")
	setBool(&cfg.Otel.Enabled, "DOCSMITH_OTEL_ENABLED")
	setString(&cfg.Otel.Endpoint, "DOCSMITH_OTEL_ENDPOINT")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Generation.DefaultMaxTokens < 1 {
		return errors.New("generation.default_max_tokens must be >= 1")
	}
	if cfg.Generation.MaxContentLength < 1 {
		return errors.New("generation.max_content_length must be >= 1")
	}
	if cfg.Generation.QualityThreshold < 0 || cfg.Generation.QualityThreshold > 1 {
		return errors.New("generation.quality_threshold must be between 0 and 1")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	if cfg.Cache.Enabled && cfg.Cache.MaxCostBytes < 1 {
		return errors.New("cache.max_cost_bytes must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setStrings splits a comma-separated env value into a slice.
func setStrings(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		*dst = out
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
