package openai

import (
	"errors"
	"time"
)

// Config holds the settings for the chat-completions client.
type Config struct {
	APIKey  string
	BaseURL string        // e.g. https://api.openai.com/v1
	Timeout time.Duration // per-request timeout
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}
