// Package recognizer converts batches of page images to text through a
// vision-language model or a local OCR engine.
package recognizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtnitsch/llm-doc-processor/pkg/pages"
)

var (
	ErrEmptyResponse = errors.New("recognizer returned no text")
	ErrNoImages      = errors.New("no page images in request")
)

// Request is one batch of pages sent for recognition.
type Request struct {
	Model       string
	Instruction string
	Pages       []pages.Page
	Languages   []string // OCR language codes, used by local engines
}

// Recognizer turns a batch of page images into text.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, req Request) (string, error)
}

// TransientError marks a failure worth retrying: rate limiting, server
// errors and network failures.
type TransientError struct {
	StatusCode int // 0 for transport errors
	Err        error
}

func (e *TransientError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("transient recognizer error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transient recognizer error: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err, or anything it wraps, is a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
