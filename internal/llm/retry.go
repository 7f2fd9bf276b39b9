package llm

import (
	"context"
	"time"
)

// RetryPolicy bounds repeated attempts with a fixed delay between them.
// Sleep is injectable so tests run without waiting.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Sleep       func(time.Duration)
}

func NewRetryPolicy(maxAttempts int, delay time.Duration) RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return RetryPolicy{MaxAttempts: maxAttempts, Delay: delay, Sleep: time.Sleep}
}

// Do runs fn until it succeeds, attempts are exhausted, or the context is
// canceled. A validation failure counts as an attempt like any other error.
func (r RetryPolicy) Do(ctx context.Context, fn func() error) error {
	var last error
	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		last = fn()
		if last == nil {
			return nil
		}
		if attempt < r.MaxAttempts && r.Delay > 0 {
			r.Sleep(r.Delay)
		}
	}
	return last
}
