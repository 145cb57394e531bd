package recognizer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dtnitsch/llm-doc-processor/pkg/pages"
)

func testRequest() Request {
	return Request{
		Model:       "gemini-2.5-flash",
		Instruction: "Convert these pages.",
		Pages: []pages.Page{
			{Number: 1, Name: "page_001.png", Data: []byte("one"), MIMEType: "image/png"},
			{Number: 2, Name: "page_002.png", Data: []byte("two"), MIMEType: "image/png"},
		},
	}
}

func TestGeminiRecognize(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-2.5-flash:generateContent" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if key := r.Header.Get("x-goog-api-key"); key != "secret" {
			t.Errorf("api key header = %q, want secret", key)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("request body not JSON: %v", err)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"# Title\n"},{"text":"Body text"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient("secret", WithBaseURL(srv.URL))
	text, err := c.Recognize(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if text != "# Title\nBody text" {
		t.Errorf("Recognize() = %q, want joined parts", text)
	}

	if len(got.Contents) != 1 || len(got.Contents[0].Parts) != 3 {
		t.Fatalf("request parts = %+v, want instruction plus two images", got.Contents)
	}
	parts := got.Contents[0].Parts
	if parts[0].Text != "Convert these pages." {
		t.Errorf("first part = %q, want instruction", parts[0].Text)
	}
	if parts[2].InlineData == nil || parts[2].InlineData.Data != base64.StdEncoding.EncodeToString([]byte("two")) {
		t.Errorf("third part = %+v, want second page inlined", parts[2])
	}
	if got.GenerationConfig.Temperature != 0.1 {
		t.Errorf("temperature = %v, want 0.1", got.GenerationConfig.Temperature)
	}
}

func TestGeminiRecognize_ModelNameEscaped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("query = %q, want none", r.URL.RawQuery)
		}
		if want := "/v1beta/models/tuned%2Fmodel%3Fv=2:generateContent"; r.URL.EscapedPath() != want {
			t.Errorf("escaped path = %q, want %q", r.URL.EscapedPath(), want)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	req := testRequest()
	req.Model = "tuned/model?v=2"
	c := NewGeminiClient("secret", WithBaseURL(srv.URL))
	if _, err := c.Recognize(context.Background(), req); err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
}

func TestGeminiRecognize_Errors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantTransient bool
		wantEmpty     bool
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"quota"}}`, true, false},
		{"server error", http.StatusServiceUnavailable, `overloaded`, true, false},
		{"bad request", http.StatusBadRequest, `{"error":{"message":"bad image"}}`, false, false},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, false, true},
		{"blank text", http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`, false, true},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGeminiClient("k", WithBaseURL(srv.URL)).Recognize(context.Background(), testRequest())
			if err == nil {
				t.Fatal("Recognize() error = nil, want error")
			}
			if got := IsTransient(err); got != tt.wantTransient {
				t.Errorf("IsTransient(%v) = %v, want %v", err, got, tt.wantTransient)
			}
			if got := errors.Is(err, ErrEmptyResponse); got != tt.wantEmpty {
				t.Errorf("errors.Is(%v, ErrEmptyResponse) = %v, want %v", err, got, tt.wantEmpty)
			}
		})
	}
}

func TestGeminiRecognize_Validation(t *testing.T) {
	ctx := context.Background()

	if _, err := NewGeminiClient("").Recognize(ctx, testRequest()); err == nil {
		t.Error("Recognize() without key error = nil")
	}

	req := testRequest()
	req.Pages = nil
	if _, err := NewGeminiClient("k").Recognize(ctx, req); !errors.Is(err, ErrNoImages) {
		t.Errorf("Recognize() without pages error = %v, want ErrNoImages", err)
	}
}

func TestGeminiRecognize_TransportErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewGeminiClient("k", WithBaseURL(url)).Recognize(context.Background(), testRequest())
	if !IsTransient(err) {
		t.Errorf("Recognize() against closed server error = %v, want transient", err)
	}
}
