package blueprint

import (
	"fmt"
	"strings"
)

// InvalidInputError indicates a missing required input field. Surfaced
// immediately, never retried.
type InvalidInputError struct {
	Missing []string
}

func (e *InvalidInputError) Error() string {
	return "missing inputs: " + strings.Join(e.Missing, ", ")
}

// ParseError indicates the model produced output that could not be decoded
// into a blueprint. The raw text is preserved so callers can still display
// the failed output; this is recoverable for the UI, not fatal.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse blueprint from model output: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ModelsExhaustedError indicates every identifier in the fallback list was
// rejected as unknown.
type ModelsExhaustedError struct {
	Models []string
}

func (e *ModelsExhaustedError) Error() string {
	return "no model succeeded: all fallback identifiers were rejected: " + strings.Join(e.Models, ", ")
}
