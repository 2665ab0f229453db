// Package config holds the service configuration: network binding,
// authentication, upload limits, and storage location.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the pixelveil service configuration.
type Config struct {
	// Bind is the listen address; defaults to all interfaces.
	Bind string `yaml:"bind"`

	// Port is the HTTP listen port.
	Port int `yaml:"port"`

	// APIKey protects the API when non-empty; requests must present it
	// in the X-API-Key header. Empty disables authentication.
	APIKey string `yaml:"api_key"`

	// AllowedOrigins is the CORS allow-list for browser clients.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// DataDir is where the operation history database lives. Empty
	// disables history recording.
	DataDir string `yaml:"data_dir"`

	// MaxUploadBytes bounds the size of an uploaded image.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// Default returns the default configuration. The CORS default matches
// the frontend the service was built for.
func Default() *Config {
	return &Config{
		Bind:           "0.0.0.0",
		Port:           8000,
		AllowedOrigins: []string{"http://localhost:3000"},
		DataDir:        "./data",
		MaxUploadBytes: 32 << 20,
	}
}

// Load reads a yaml configuration file and applies environment
// overrides on top of it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadOrDefault loads the file at path when one is given, and otherwise
// returns defaults with environment overrides applied.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg := Default()
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays PIXELVEIL_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("PIXELVEIL_BIND"); v != "" {
		c.Bind = v
	}
	if v := os.Getenv("PIXELVEIL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("PIXELVEIL_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("PIXELVEIL_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("PIXELVEIL_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		c.AllowedOrigins = origins
	}
	if v := os.Getenv("PIXELVEIL_MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxUploadBytes = n
		}
	}
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}
