// Package ai sends single-turn prompts to a hosted completion backend.
// Gemini (through the genai SDK) and Groq (through its OpenAI-compatible
// endpoint) are supported; the backend is picked once at startup.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Client completes a single user prompt. No conversation history is kept.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Reason classifies a completion failure.
type Reason string

// Failure reasons reported in Error.
const (
	// ReasonRequest covers transport failures and API errors.
	ReasonRequest Reason = "request"
	// ReasonBlocked means the provider refused the prompt or the output.
	ReasonBlocked Reason = "blocked"
	// ReasonEmpty means the provider answered without any text.
	ReasonEmpty Reason = "empty"
)

// Error is returned by every Client implementation in this package.
type Error struct {
	Provider string
	Reason   Reason
	Err      error
}

// Error returns text suitable for showing to the user.
func (e *Error) Error() string {
	switch e.Reason {
	case ReasonBlocked:
		return fmt.Sprintf("%s blocked the response: %v", e.Provider, e.Err)
	case ReasonEmpty:
		if e.Err != nil {
			return fmt.Sprintf("%s returned an empty response: %v", e.Provider, e.Err)
		}
		return fmt.Sprintf("%s returned an empty response", e.Provider)
	default:
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// ReasonOf reports the failure reason carried by err, or "" when err is not
// an *Error.
func ReasonOf(err error) Reason {
	var aiErr *Error
	if errors.As(err, &aiErr) {
		return aiErr.Reason
	}
	return ""
}

type timeoutClient struct {
	next    Client
	timeout time.Duration
}

// WithTimeout bounds every call to next by d. A non-positive d returns next
// unchanged.
func WithTimeout(next Client, d time.Duration) Client {
	if d <= 0 {
		return next
	}
	return timeoutClient{next: next, timeout: d}
}

func (c timeoutClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.next.Complete(ctx, prompt)
}
