package openai

import "errors"

var (
	// ErrRateLimited signals upstream throttling (HTTP 429).
	ErrRateLimited = errors.New("rate limited by upstream")

	// ErrModelNotFound signals an unrecognized or unsupported model
	// identifier (HTTP 404).
	ErrModelNotFound = errors.New("model not found")

	// ErrUnauthorized signals a rejected API key (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmptyResponse signals a well-formed reply with no choices.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrNetworkError signals a transport-level failure.
	ErrNetworkError = errors.New("network error")
)
