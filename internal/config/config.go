// Package config provides configuration loading for the MIR simulator
// backend.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete backend configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	// Port is the TCP port the API listens on
	Port string `yaml:"port"`
	// CORSOrigins lists the allowed origins ("*" allows all)
	CORSOrigins []string `yaml:"cors_origins"`
}

// DataConfig configures the exam content directory
type DataConfig struct {
	// Dir is the directory holding exam, dissection, and similarity JSON
	Dir string `yaml:"dir"`
	// Validate enables JSON Schema validation of loaded documents
	Validate bool `yaml:"validate"`
}

// StorageConfig selects the session/review persistence backend
type StorageConfig struct {
	// Backend is one of "memory", "postgres", or "redis"
	Backend string `yaml:"backend"`
	// RedisURL is the connection URL when Backend is "redis"
	RedisURL string `yaml:"redis_url"`
}

// AuthConfig configures token issuing
type AuthConfig struct {
	// JWTSecret overrides the built-in signing key
	JWTSecret string `yaml:"jwt_secret"`
}

var validBackends = map[string]bool{
	"memory":   true,
	"postgres": true,
	"redis":    true,
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			CORSOrigins: []string{"*"},
		},
		Data: DataConfig{
			Dir:      "data",
			Validate: true,
		},
		Storage: StorageConfig{
			Backend:  "memory",
			RedisURL: "redis://localhost:6379/0",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if !validBackends[c.Storage.Backend] {
		return fmt.Errorf("storage.backend must be memory, postgres, or redis")
	}
	if c.Storage.Backend == "redis" && c.Storage.RedisURL == "" {
		return fmt.Errorf("storage.redis_url is required for the redis backend")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load builds the effective configuration: defaults, then the optional
// file named by MIR_CONFIG, then environment overrides.
func Load() (*Config, error) {
	config := DefaultConfig()

	if path := os.Getenv("MIR_CONFIG"); path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnv applies environment variable overrides on top of the current
// values.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitOrigins(v)
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
}

func splitOrigins(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
