// Package provider abstracts the inference endpoint behind a Runner so the
// pipeline and tests never depend on a live Bedrock API.
package provider

import "context"

// Request is one model invocation. The prompt is a deterministic function
// of the plan input; per-invocation data such as timestamps never enters it.
type Request struct {
	Prompt    string
	ModelID   string
	MaxTokens int
}

type Runner interface {
	// Analyze sends the prompt and returns the model's raw text response.
	Analyze(ctx context.Context, req Request) (string, error)

	// Ping verifies the endpoint is reachable with the current credentials.
	Ping(ctx context.Context) error
}

// TransportError marks retryable network, timeout, or server-side failures.
// The process exits with status 2 when one survives the retry budget.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "inference transport failure: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// AuthError marks credential failures. Never retried; exit status 3.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return "inference authentication failure: " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }
