package llm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"google.golang.org/api/googleapi"
)

// Kind classifies a gateway failure. Callers branch only on these three kinds.
type Kind int

// Failure kinds.
const (
	// KindTransient marks rate-limit/overload failures; retried with backoff.
	KindTransient Kind = iota
	// KindNotFound marks an unknown model identifier; never retried against
	// the same model, callers advance to the next fallback identifier.
	KindNotFound
	// KindFatal marks everything else; surfaced immediately.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindNotFound:
		return "not_found"
	default:
		return "fatal"
	}
}

// GenerateError is the structured failure returned by the gateway.
// RetryAfter carries the model-suggested wait, when one was present, so the
// backoff policy never has to parse error message text itself.
type GenerateError struct {
	Kind       Kind
	Model      string
	RetryAfter time.Duration
	Err        error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("model %s: %s failure: %v", e.Model, e.Kind, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a gateway transient failure.
func IsTransient(err error) bool {
	var ge *GenerateError
	return errors.As(err, &ge) && ge.Kind == KindTransient
}

// IsNotFound reports whether err is an unknown-model failure.
func IsNotFound(err error) bool {
	var ge *GenerateError
	return errors.As(err, &ge) && ge.Kind == KindNotFound
}

// ConfigError indicates the gateway cannot operate at all, e.g. a missing
// credential. Distinct from GenerateError so callers can report "fix your
// configuration" instead of "the model failed".
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "llm configuration error: " + e.Reason
}

// IsConfigError reports whether err is a configuration failure.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// retryDelayPattern matches the delay hint the Gemini API embeds in overload
// error bodies, e.g. `"retryDelay": "39s"`.
var retryDelayPattern = regexp.MustCompile(`retryDelay[^0-9]*(\d+)s`)

// classify maps a raw model-call error onto the gateway taxonomy and extracts
// the retry hint, if any, into the structured RetryAfter field.
func classify(model string, err error) *GenerateError {
	ge := &GenerateError{Kind: KindFatal, Model: model, Err: err}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return ge
	}

	switch apiErr.Code {
	case 429, 500, 503:
		ge.Kind = KindTransient
		ge.RetryAfter = retryHint(apiErr)
	case 404:
		ge.Kind = KindNotFound
	}
	return ge
}

// retryHint pulls the suggested wait out of a transient API error: the
// Retry-After header when present, otherwise the retryDelay field the API
// serializes into the error body.
func retryHint(apiErr *googleapi.Error) time.Duration {
	if apiErr.Header != nil {
		if v := apiErr.Header.Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}
	if m := retryDelayPattern.FindStringSubmatch(apiErr.Body); m != nil {
		if secs, err := strconv.Atoi(m[1]); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}
