// Package tesseract registers the local Tesseract engine under the name
// "tesseract". It needs cgo and the tesseract and leptonica headers.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/dtnitsch/llm-doc-processor/pkg/recognizer"
)

func init() {
	recognizer.RegisterLocal("tesseract", func() recognizer.Recognizer { return New() })
}

// Engine recognizes pages locally with Tesseract. It ignores the
// model instruction and works page by page through hOCR output.
type Engine struct {
	clientFactory func() *gosseract.Client
}

func New() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

func (e *Engine) Recognize(ctx context.Context, req recognizer.Request) (string, error) {
	if len(req.Pages) == 0 {
		return "", recognizer.ErrNoImages
	}

	c := e.clientFactory()
	defer c.Close()

	if len(req.Languages) > 0 {
		if err := c.SetLanguage(req.Languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}

	var texts []string
	for _, p := range req.Pages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := c.SetImageFromBytes(p.Data); err != nil {
			return "", fmt.Errorf("set image %s: %w", p.Name, err)
		}
		hocr, err := c.HOCRText()
		if err != nil {
			return "", fmt.Errorf("recognize %s: %w", p.Name, err)
		}
		text, err := recognizer.ParseHOCR(strings.NewReader(hocr))
		if err != nil {
			return "", fmt.Errorf("%s: %w", p.Name, err)
		}
		if text != "" {
			texts = append(texts, text)
		}
	}

	if len(texts) == 0 {
		return "", recognizer.ErrEmptyResponse
	}
	return strings.Join(texts, "\n\n"), nil
}
