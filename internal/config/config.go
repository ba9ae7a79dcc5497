package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override values from the config file
const (
	EnvAPIURL   = "HALORADIO_API_URL"
	EnvSession  = "HALORADIO_SESSION"
	EnvLogLevel = "HALORADIO_LOG_LEVEL"
)

// Config represents the application configuration
type Config struct {
	API     APIConfig     `toml:"api"`
	Station StationConfig `toml:"station"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

// APIConfig describes how to reach the station back office
type APIConfig struct {
	BaseURL           string `toml:"base_url"`
	SessionCookieName string `toml:"session_cookie_name"`
	SessionCookie     string `toml:"session_cookie"`
	TimeoutSeconds    int    `toml:"timeout_seconds"` // 0 leaves the transport default
	UserAgent         string `toml:"user_agent"`
}

// StationConfig contains the station's wall-clock settings
type StationConfig struct {
	UTCOffsetHours int    `toml:"utc_offset_hours"`
	ZoneLabel      string `toml:"zone_label"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// UIConfig contains terminal presentation settings
type UIConfig struct {
	Color             bool   `toml:"color"`
	ConfirmDeletes    bool   `toml:"confirm_deletes"`
	DefaultImportMode string `toml:"default_import_mode"`
	PollSeconds       int    `toml:"poll_interval_seconds"` // refresh period of --watch
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "http://localhost:5000",
			SessionCookieName: "session",
			SessionCookie:     "",
			TimeoutSeconds:    0,
			UserAgent:         "haloradio-admin",
		},
		Station: StationConfig{
			UTCOffsetHours: 7,
			ZoneLabel:      "WIB",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "",
		},
		UI: UIConfig{
			Color:             true,
			ConfirmDeletes:    true,
			DefaultImportMode: "merge",
			PollSeconds:       5,
		},
	}
}

// LoadConfig loads configuration from a TOML file, applies overrides from
// the environment (and a .env file in the working directory, if any) and
// validates the result.
func LoadConfig(configPath string) (*Config, error) {
	cfg, err := Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Load is LoadConfig without validation, for callers that apply further
// overrides (such as command-line flags) before calling Validate.
func Load(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Config file doesn't exist, create it with defaults
		if err := cfg.SaveToFile(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config file: %w", err)
		}
	} else if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// loadDotEnv loads path into the process environment when the file exists.
// Variables already set in the environment win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values with the HALORADIO_* environment variables
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSession)); v != "" {
		c.API.SessionCookie = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// SaveToFile saves the configuration to a TOML file
func (c *Config) SaveToFile(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	header := `# Halo Radio admin client configuration
# The session cookie can also be provided through HALORADIO_SESSION (or a .env file).

`
	if _, err := file.WriteString(header); err != nil {
		return fmt.Errorf("failed to write config header: %w", err)
	}

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config to TOML: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base url cannot be empty")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api base url must be an absolute http(s) url: %q", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api timeout cannot be negative")
	}
	if c.API.SessionCookie != "" && c.API.SessionCookieName == "" {
		return fmt.Errorf("session cookie name cannot be empty when a session cookie is set")
	}

	if c.Station.UTCOffsetHours < -12 || c.Station.UTCOffsetHours > 14 {
		return fmt.Errorf("station utc offset out of range: %d", c.Station.UTCOffsetHours)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"text": true, "json": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Logging.Format)
	}

	if c.UI.PollSeconds < 1 {
		return fmt.Errorf("poll interval must be at least 1 second, got %d", c.UI.PollSeconds)
	}

	return nil
}

// PollInterval is the refresh period of watched panels
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.UI.PollSeconds) * time.Second
}

// Timeout returns the HTTP client timeout; zero means none is set.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}
