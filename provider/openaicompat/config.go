package openaicompat

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL     = "https://api.llm7.io/v1"
	DefaultModel       = "gpt-4.1-nano"
	DefaultTemperature = 1.0
	DefaultTimeout     = 120 * time.Second
	DefaultMaxRetries  = 3
)

// Config holds the construction-time configuration for a Client. It is
// immutable after New.
type Config struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
	// Temperature defaults to 1.0 when nil; an explicit zero is honored.
	Temperature *float64          `yaml:"temperature"`
	MaxTokens   int               `yaml:"max_tokens"`
	Stop        []string          `yaml:"stop"`
	Headers     map[string]string `yaml:"headers"`
	Timeout     time.Duration     `yaml:"timeout"`
	MaxRetries  *int              `yaml:"max_retries"`
}

// defaults sets default values for unset fields and resolves the API
// key from the environment when only api_key_env is given.
func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Temperature == nil {
		t := DefaultTemperature
		c.Temperature = &t
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries == nil {
		n := DefaultMaxRetries
		c.MaxRetries = &n
	}
	if c.APIKey == "" && c.APIKeyEnv != "" {
		c.APIKey = os.Getenv(c.APIKeyEnv)
	}
}

// validate returns an error if the configuration is unusable.
func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("openaicompat: base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("openaicompat: base_url scheme must be http or https, got %q", u.Scheme)
	}
	if c.Model == "" {
		return fmt.Errorf("openaicompat: model is required")
	}
	if c.Temperature != nil && *c.Temperature < 0 {
		return fmt.Errorf("openaicompat: temperature must not be negative")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("openaicompat: max_tokens must not be negative")
	}
	if c.MaxRetries != nil && *c.MaxRetries < 0 {
		return fmt.Errorf("openaicompat: max_retries must not be negative")
	}
	return nil
}
