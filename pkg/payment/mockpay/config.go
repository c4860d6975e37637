package mockpay

import (
	"errors"
	"time"
)

// Config holds the simulated processor settings.
type Config struct {
	Provider string        // provider label stamped onto approvals
	Delay    time.Duration // simulated processing time
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Provider == "" {
		return errors.New("provider is required")
	}
	if c.Delay < 0 {
		return errors.New("delay cannot be negative")
	}
	return nil
}
