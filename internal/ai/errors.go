package ai

import "fmt"

// ProviderError marks a vendor call failure (network, auth, quota, empty
// choices). The orchestrator catches it and moves to the next provider in
// the chain.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedResponseError marks a vendor reply that could not be parsed into
// the expected structured shape. The analysis caller substitutes a degraded
// placeholder instead of failing hard.
type MalformedResponseError struct {
	Provider string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("provider %s returned malformed response: %v", e.Provider, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// AllProvidersFailedError is terminal: every provider in the chain,
// including the mock tier when enabled, failed. Last carries the final
// underlying error.
type AllProvidersFailedError struct {
	Last error
}

func (e *AllProvidersFailedError) Error() string {
	return fmt.Sprintf("all AI providers failed: %v", e.Last)
}

func (e *AllProvidersFailedError) Unwrap() error { return e.Last }
