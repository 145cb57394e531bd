package recognizer

import (
	"context"
	"errors"
	"testing"
	"time"
)

type flakyRecognizer struct {
	failures int
	err      error
	calls    int
}

func (f *flakyRecognizer) Name() string { return "flaky" }

func (f *flakyRecognizer) Recognize(ctx context.Context, req Request) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", f.err
	}
	return "ok", nil
}

func TestWithRetry(t *testing.T) {
	transient := &TransientError{StatusCode: 503, Err: errors.New("busy")}
	permanent := errors.New("bad request")

	tests := []struct {
		name      string
		failures  int
		err       error
		retries   int
		wantCalls int
		wantErr   bool
	}{
		{"succeeds first time", 0, transient, 2, 1, false},
		{"recovers after transient failures", 2, transient, 2, 3, false},
		{"gives up after max retries", 5, transient, 2, 3, true},
		{"permanent error not retried", 5, permanent, 3, 1, true},
		{"zero retries", 1, transient, 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &flakyRecognizer{failures: tt.failures, err: tt.err}
			r := WithRetry(f, RetryPolicy{MaxRetries: tt.retries, Backoff: time.Millisecond})

			text, err := r.Recognize(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Recognize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && text != "ok" {
				t.Errorf("Recognize() = %q, want ok", text)
			}
			if f.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", f.calls, tt.wantCalls)
			}
		})
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	f := &flakyRecognizer{failures: 10, err: &TransientError{Err: errors.New("down")}}
	r := WithRetry(f, RetryPolicy{MaxRetries: 5, Backoff: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.Recognize(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Recognize() error = %v, want context.DeadlineExceeded", err)
	}
	if f.calls != 1 {
		t.Errorf("calls = %d, want 1", f.calls)
	}
	if r.Name() != "flaky" {
		t.Errorf("Name() = %q, want flaky", r.Name())
	}
}
