package common

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/llm-doc-processor/models"
	"github.com/dtnitsch/llm-doc-processor/pkg/recognizer"
)

type stubRecognizer struct{}

func (stubRecognizer) Name() string { return "stub" }

func (stubRecognizer) Recognize(ctx context.Context, req recognizer.Request) (string, error) {
	return "", nil
}

func init() {
	recognizer.RegisterLocal("common-test-local", func() recognizer.Recognizer { return stubRecognizer{} })
}

func TestNewRecognizer(t *testing.T) {
	tests := []struct {
		name     string
		engine   string
		apiKey   string
		wantName string
		wantErr  bool
	}{
		{"gemini", "gemini", "key", "gemini", false},
		{"default engine", "", "key", "gemini", false},
		{"gemini without key", "gemini", "", "", true},
		{"registered local engine", "Common-Test-Local", "", "stub", false},
		{"local engine not linked", "tesseract", "", "", true},
		{"unknown", "abbyy", "key", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NewRecognizer(tt.engine, tt.apiKey)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewRecognizer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && rec.Name() != tt.wantName {
				t.Errorf("NewRecognizer().Name() = %q, want %q", rec.Name(), tt.wantName)
			}
		})
	}
}

func TestWriteOutput(t *testing.T) {
	v := struct {
		Status string `json:"status" yaml:"status"`
	}{Status: "success"}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, v, "yaml"); err != nil {
		t.Fatalf("WriteOutput(yaml) error = %v", err)
	}
	if buf.String() != "status: success\n" {
		t.Errorf("WriteOutput(yaml) = %q", buf.String())
	}

	buf.Reset()
	if err := WriteOutput(&buf, v, "json"); err != nil {
		t.Fatalf("WriteOutput(json) error = %v", err)
	}
	if !strings.Contains(buf.String(), `"status": "success"`) {
		t.Errorf("WriteOutput(json) = %q", buf.String())
	}

	if err := WriteOutput(&buf, v, "xml"); err == nil {
		t.Error("WriteOutput(xml) error = nil, want error")
	}
}

func TestFilterResultFields(t *testing.T) {
	v := struct {
		Success bool    `json:"success"`
		Score   float64 `json:"quality_score"`
		Input   string  `json:"input_path"`
	}{true, 81.5, "a.pdf"}

	got := FilterResultFields(v, "success, quality_score")
	if len(got) != 2 || got["success"] != true || got["quality_score"] != 81.5 {
		t.Errorf("FilterResultFields() = %v", got)
	}

	if all := FilterResultFields(v, ""); len(all) != 3 {
		t.Errorf("FilterResultFields(\"\") returned %d fields, want 3", len(all))
	}
}

func TestRunConfigFromFlags(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("engine", "gemini", "")
	set.Int("workers", 2, "")
	set.String("cache-dir", ".ldp-cache", "")
	set.Duration("cache-ttl", time.Hour, "")
	set.String("api-key", "", "")
	set.Bool("force", false, "")
	set.Bool("dry-run", false, "")
	set.String("db", "", "")
	if err := set.Parse([]string{"--engine", "tesseract", "--workers", "6", "--force", "--dry-run"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	c := cli.NewContext(cli.NewApp(), set, nil)

	cfg := RunConfigFromFlags(c)
	if cfg.Engine != "tesseract" {
		t.Errorf("Engine = %q, want tesseract", cfg.Engine)
	}
	if cfg.Workers != 6 {
		t.Errorf("Workers = %d, want 6", cfg.Workers)
	}
	if !cfg.Force || !cfg.DryRun {
		t.Errorf("Force = %v, DryRun = %v, want both true", cfg.Force, cfg.DryRun)
	}
	defaults := models.DefaultRunConfig()
	if cfg.CacheDir != defaults.CacheDir || cfg.CacheTTL != defaults.CacheTTL {
		t.Errorf("unset cache flags changed defaults: %q %v", cfg.CacheDir, cfg.CacheTTL)
	}
}

func TestNewProcessor_DryRunSkipsHistory(t *testing.T) {
	cfg := models.DefaultRunConfig()
	cfg.APIKey = "key"
	cfg.CacheDir = t.TempDir()
	cfg.DryRun = true

	proc, closeFn, err := NewProcessor(cfg, nil)
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}
	defer closeFn()
	if proc.Engine() != "gemini" {
		t.Errorf("Engine() = %q, want gemini", proc.Engine())
	}
}
