package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	APIURL         string        `mapstructure:"api_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // 0 disables the timeout
	JobFetchMode   string        `mapstructure:"job_fetch_mode"`  // browser, http
	BrowserTimeout time.Duration `mapstructure:"browser_timeout"`
	LogLevel       string        `mapstructure:"log_level"` // debug, info, warn, error
}

const (
	FetchModeBrowser = "browser"
	FetchModeHTTP    = "http"

	DefaultAPIURL = "http://127.0.0.1:5000"
)

// ValidKeys lists the keys accepted by Set
var ValidKeys = []string{"api_url", "request_timeout", "job_fetch_mode", "browser_timeout", "log_level"}

var AppConfig *Config

// Dir returns the directory holding config, database and log files.
// RESUMATCH_HOME overrides the default of ~/.resumatch.
func Dir() (string, error) {
	if dir := os.Getenv("RESUMATCH_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".resumatch"), nil
}

// Initialize loads or creates the configuration file
func Initialize() error {
	configDir, err := Dir()
	if err != nil {
		return err
	}
	configFile := filepath.Join(configDir, "config.yaml")

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	viper.Reset()
	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("resumatch")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("api_url", DefaultAPIURL)
	viper.SetDefault("request_timeout", "0s")
	viper.SetDefault("job_fetch_mode", FetchModeBrowser)
	viper.SetDefault("browser_timeout", "30s")
	viper.SetDefault("log_level", "info")

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal into struct
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	AppConfig = cfg

	return nil
}

// Validate checks values that would otherwise fail later at request time
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("api_url must start with http:// or https://, got %q", c.APIURL)
	}
	if c.JobFetchMode != FetchModeBrowser && c.JobFetchMode != FetchModeHTTP {
		return fmt.Errorf("job_fetch_mode must be %q or %q, got %q", FetchModeBrowser, FetchModeHTTP, c.JobFetchMode)
	}
	if c.RequestTimeout < 0 || c.BrowserTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# ResuMatch Configuration
# Base URL of the analysis backend
api_url: ` + DefaultAPIURL + `

# Timeout for backend calls, 0s waits indefinitely
request_timeout: 0s

# How job postings are fetched by 'job set --url': browser, http
job_fetch_mode: browser
browser_timeout: 30s

# debug, info, warn, error
log_level: info
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// IsValidKey reports whether key can be changed with Set
func IsValidKey(key string) bool {
	for _, k := range ValidKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Set updates a configuration value
func Set(key, value string) error {
	if !IsValidKey(key) {
		return fmt.Errorf("invalid key %q, must be one of: %v", key, ValidKeys)
	}
	if err := validateValue(key, value); err != nil {
		return err
	}
	viper.Set(key, value)
	return viper.WriteConfig()
}

func validateValue(key, value string) error {
	switch key {
	case "api_url":
		c := Config{APIURL: value, JobFetchMode: FetchModeBrowser}
		return c.Validate()
	case "job_fetch_mode":
		c := Config{APIURL: DefaultAPIURL, JobFetchMode: value}
		return c.Validate()
	case "request_timeout", "browser_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if d < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
	case "log_level":
		switch value {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("log_level must be one of debug, info, warn, error")
		}
	}
	return nil
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
