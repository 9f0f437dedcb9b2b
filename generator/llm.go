package generator

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// LLMClient abstracts the generation backend so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings carries provider configuration to concrete implementations.
type LLMSettings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

// BackendErrorKind distinguishes the ways a generation call can fail.
type BackendErrorKind string

const (
	ErrKindNetwork BackendErrorKind = "network"
	ErrKindBackend BackendErrorKind = "backend"
	ErrKindTimeout BackendErrorKind = "timeout"
)

// BackendError wraps a generation-call failure with its classification.
// These are scoped to one step: the orchestrator records the step as failed
// and continues, it never aborts the plan.
type BackendError struct {
	Kind BackendErrorKind
	Err  error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("generation backend (%s): %v", e.Kind, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// classifyBackendError wraps err as a BackendError, inferring the kind from
// context deadlines and net errors. Anything else counts as a backend fault.
func classifyBackendError(err error) *BackendError {
	kind := ErrKindBackend
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = ErrKindTimeout
	case errors.As(err, &ne):
		if ne.Timeout() {
			kind = ErrKindTimeout
		} else {
			kind = ErrKindNetwork
		}
	}
	return &BackendError{Kind: kind, Err: err}
}
