package util

import (
	"strings"

	"github.com/google/uuid"
)

// NewDesignID returns a unique identifier for a generated design.
// UUID-based rather than timestamp-based so rapid successive
// generations cannot collide.
func NewDesignID() string {
	return "design-" + uuid.NewString()
}

// NewOrderID returns a unique, human-readable order identifier
// of the form ORDER-XXXXXXXX.
func NewOrderID() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORDER-" + token[:8]
}

// NewSessionID returns a unique session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
