// Package config loads panel configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBackendBaseURL is the production AudioMon backend.
const DefaultBackendBaseURL = "https://audiomonbackend.slicegames.nl"

// AuthHeaderName is the custom header the backend expects the raw
// bearer token under.
const AuthHeaderName = "Authentication"

// PanelConfig represents the panel server configuration
type PanelConfig struct {
	Address     string        `yaml:"address"`
	Environment string        `yaml:"environment"` // development | production
	TLS         TLSConfig     `yaml:"tls"`
	Backend     BackendConfig `yaml:"backend"`
	Logging     LoggingConfig `yaml:"logging"`
}

// TLSConfig represents TLS settings
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// BackendConfig represents the external backend settings
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
}

// LoggingConfig represents logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *PanelConfig {
	return &PanelConfig{
		Address:     ":3000",
		Environment: "development",
		TLS: TLSConfig{
			Enabled: false,
		},
		Backend: BackendConfig{
			BaseURL: DefaultBackendBaseURL,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*PanelConfig, error) {
	config := DefaultConfig()

	if configPath != "" {
		if err := loadFromFile(configPath, config); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func loadFromFile(path string, config *PanelConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, config)
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(config *PanelConfig) {
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		config.Address = addr
	}

	if env := os.Getenv("APP_ENV"); env != "" {
		config.Environment = env
	}

	if baseURL := os.Getenv("BACKEND_BASE_URL"); baseURL != "" {
		config.Backend.BaseURL = baseURL
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		config.Logging.Format = logFormat
	}

	if tlsEnabled := os.Getenv("TLS_ENABLED"); tlsEnabled != "" {
		config.TLS.Enabled = tlsEnabled == "true"
	}

	if certFile := os.Getenv("TLS_CERT_FILE"); certFile != "" {
		config.TLS.CertFile = certFile
	}

	if keyFile := os.Getenv("TLS_KEY_FILE"); keyFile != "" {
		config.TLS.KeyFile = keyFile
	}
}

// Validate validates the configuration
func (c *PanelConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("server address cannot be empty")
	}

	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base URL cannot be empty")
	}

	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend base URL is not a valid absolute URL: %s", c.Backend.BaseURL)
	}

	if c.TLS.Enabled {
		if c.TLS.CertFile == "" || c.TLS.KeyFile == "" {
			return fmt.Errorf("TLS enabled but cert/key files not provided")
		}

		if _, err := os.Stat(c.TLS.CertFile); err != nil {
			return fmt.Errorf("certificate file not found: %w", err)
		}

		if _, err := os.Stat(c.TLS.KeyFile); err != nil {
			return fmt.Errorf("key file not found: %w", err)
		}
	}

	if !isValidLogLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// IsProduction reports whether the panel runs in production mode.
// Gates the Secure flag on session cookies.
func (c *PanelConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func isValidLogLevel(level string) bool {
	valid := []string{"debug", "info", "warn", "error"}
	level = strings.ToLower(level)
	for _, v := range valid {
		if level == v {
			return true
		}
	}
	return false
}

// String returns a string representation of the configuration (for logging)
func (c *PanelConfig) String() string {
	return fmt.Sprintf("Config{Address: %s, Backend: %s, Env: %s, TLS: %v, LogLevel: %s}",
		c.Address, c.Backend.BaseURL, c.Environment, c.TLS.Enabled, c.Logging.Level)
}
