package llm

import "time"

// backoffDelay computes the wait before retry number attempt (0-based).
// A model-suggested hint wins over the exponential default; both are capped.
func backoffDelay(attempt int, hint, base, max time.Duration) time.Duration {
	delay := hint
	if delay <= 0 {
		delay = base << uint(attempt)
	}
	if delay > max {
		delay = max
	}
	return delay
}
