package recognizer

import (
	"context"
	"log/slog"
	"time"
)

// RetryPolicy bounds how often a transient failure is retried.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration // doubled after every attempt
	Logger     *slog.Logger
}

type retrying struct {
	next   Recognizer
	policy RetryPolicy
}

// WithRetry wraps r so transient errors are retried with exponential
// backoff. Other errors and context cancellation return immediately.
func WithRetry(r Recognizer, policy RetryPolicy) Recognizer {
	if policy.Logger == nil {
		policy.Logger = slog.Default()
	}
	if policy.Backoff <= 0 {
		policy.Backoff = time.Second
	}
	return &retrying{next: r, policy: policy}
}

func (r *retrying) Name() string { return r.next.Name() }

func (r *retrying) Recognize(ctx context.Context, req Request) (string, error) {
	for attempt := 0; ; attempt++ {
		text, err := r.next.Recognize(ctx, req)
		if err == nil {
			return text, nil
		}
		if !IsTransient(err) || attempt >= r.policy.MaxRetries {
			return "", err
		}

		wait := r.policy.Backoff << attempt
		r.policy.Logger.Warn("Recognition failed, retrying",
			"engine", r.next.Name(), "attempt", attempt+1, "wait", wait.String(), "error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}
