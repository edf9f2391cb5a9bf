package llm

import (
	"context"
	"time"
)

// maxBackoff caps the doubling delay between attempts.
const maxBackoff = 5 * time.Second

// retryDelay returns the wait before retry number attempt (1-based):
// base, 2*base, 4*base, ... capped at maxBackoff.
func retryDelay(base time.Duration, attempt int) time.Duration {
	if base <= 0 || attempt < 1 {
		return 0
	}
	d := base
	for i := 1; i < attempt && d < maxBackoff; i++ {
		d *= 2
	}
	return min(d, maxBackoff)
}

// waitRetry sleeps for retryDelay and reports false when ctx ends first.
func waitRetry(ctx context.Context, base time.Duration, attempt int) bool {
	d := retryDelay(base, attempt)
	if d == 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
