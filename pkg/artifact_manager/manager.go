// Package artifact_manager decides where processing outputs go and writes them.
package artifact_manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/llm-doc-processor/models"
	"github.com/dtnitsch/llm-doc-processor/pkg/detector"
	"github.com/dtnitsch/llm-doc-processor/pkg/language"
	"github.com/dtnitsch/llm-doc-processor/pkg/manifest"
	"github.com/dtnitsch/llm-doc-processor/pkg/outline"
)

const (
	OutputSuffix   = "_processed"
	MarkdownExt    = ".md"
	MetadataExt    = ".json"
	ManifestPrefix = "summary-"
)

// OutputPath returns where the markdown for input goes. An explicit path
// ending in ".md" is used as is; any other explicit path is treated as a
// directory. Without one the output sits beside the input.
// Example: papers/attention.pdf -> papers/attention_processed.md
func OutputPath(input, explicit string) string {
	name := stem(input) + OutputSuffix + MarkdownExt
	switch {
	case explicit == "":
		return filepath.Join(filepath.Dir(input), name)
	case strings.EqualFold(filepath.Ext(explicit), MarkdownExt):
		return explicit
	default:
		return filepath.Join(explicit, name)
	}
}

// MetadataPath returns the JSON sibling of a markdown output.
// Example: out/attention_processed.md -> out/attention_processed.json
func MetadataPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + MetadataExt
}

// stem strips the extension; a page directory keeps its own name.
func stem(input string) string {
	base := filepath.Base(filepath.Clean(input))
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// ProfileInfo identifies the profile and engine a document was processed with.
type ProfileInfo struct {
	Name         string              `json:"name"`
	DocumentType models.DocumentType `json:"document_type"`
	ModelName    string              `json:"model_name"`
	Engine       string              `json:"engine"`
}

// Metadata is the JSON document written next to each markdown output.
type Metadata struct {
	Timestamp    string                `json:"timestamp"`
	InputFile    string                `json:"input_file"`
	OutputFile   string                `json:"output_file"`
	Profile      ProfileInfo           `json:"profile"`
	Success      bool                  `json:"success"`
	QualityScore float64               `json:"quality_score"`
	Metrics      models.QualityMetrics `json:"metrics"`
	Errors       []string              `json:"errors,omitempty"`
	Warnings     []string              `json:"warnings,omitempty"`
	BatchResults []models.BatchResult  `json:"batch_results"`
	Language     language.Result       `json:"language"`
	Outline      []outline.Heading     `json:"outline,omitempty"`
	TopKeywords  []string              `json:"top_keywords,omitempty"`
	Signals      detector.Signals      `json:"signals"`
}

// NewMetadata assembles metadata for a finished result. Batch texts are
// dropped; the markdown file already holds them.
func NewMetadata(result models.ProcessingResult, profile ProfileInfo) Metadata {
	batches := make([]models.BatchResult, len(result.BatchResults))
	for i, b := range result.BatchResults {
		b.Text = ""
		batches[i] = b
	}
	return Metadata{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		InputFile:    result.InputPath,
		OutputFile:   result.OutputPath,
		Profile:      profile,
		Success:      result.Success,
		QualityScore: result.QualityScore,
		Metrics:      result.Metrics,
		Errors:       result.Errors,
		Warnings:     result.Warnings,
		BatchResults: batches,
	}
}

// SaveMarkdown writes the final document text, creating parent directories.
func SaveMarkdown(path, text string) error {
	if err := saveFile(path, []byte(text)); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

// SaveMetadata writes m as indented JSON beside the markdown output and
// returns the metadata path.
func SaveMetadata(outputPath string, m Metadata) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	path := MetadataPath(outputPath)
	if err := saveFile(path, data); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}
	return path, nil
}

// LoadMetadata reads a metadata file written by SaveMetadata.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode metadata %s: %w", path, err)
	}
	return &m, nil
}

// SaveManifest writes a batch summary as YAML into dir and returns its path.
// Example: out/summary-2025-01-31.yaml
func SaveManifest(dir string, m *manifest.SummaryManifest) (string, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestPrefix+time.Now().Format("2006-01-02")+".yaml")
	if err := saveFile(path, data); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

func saveFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}
	return os.WriteFile(path, content, 0644)
}
