package mockpay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is a simulated payment processor. Approve waits the configured
// delay and then succeeds unconditionally; there is no decline path.
type Client struct {
	config Config
}

// NewClient creates a new mock payment client with the given configuration.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Client{config: config}, nil
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() Config {
	return c.config
}

// Approve simulates processing the payment. The only failure mode is
// context cancellation during the simulated delay.
func (c *Client) Approve(ctx context.Context, req ApproveRequest) (*ApproveResponse, error) {
	if c.config.Delay > 0 {
		select {
		case <-time.After(c.config.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return &ApproveResponse{
		AID:        "A" + token[:11],
		TID:        "T" + token[11:22],
		Provider:   c.config.Provider,
		Amount:     req.Amount,
		ApprovedAt: time.Now(),
	}, nil
}
