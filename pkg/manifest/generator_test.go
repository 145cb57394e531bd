package manifest

import (
	"testing"

	"github.com/dtnitsch/llm-doc-processor/models"
)

func TestGenerateSummary(t *testing.T) {
	results := []models.ProcessingResult{
		{
			Success:      true,
			InputPath:    "in/a.pdf",
			OutputPath:   "out/a_processed.md",
			QualityScore: 90,
			Metrics:      models.QualityMetrics{WordCount: 300, PagesProcessed: 3},
			Keywords:     map[string]int{"attention": 4, "model": 2},
		},
		{
			InputPath:    "in/b.pdf",
			OutputPath:   "out/b_processed.md",
			QualityScore: 50,
			Metrics:      models.QualityMetrics{WordCount: 30, PagesProcessed: 1},
			Warnings:     []string{"quality score 50.0 below threshold 80.0"},
			Keywords:     map[string]int{"model": 3},
		},
		{
			InputPath: "in/c.pdf",
			Errors:    []string{"no text extracted from document"},
		},
	}

	m := GenerateSummary(Header{InputDirectory: "in", OutputDirectory: "out", Profile: "academic_paper"}, results)

	if m.TotalDocuments != 3 || m.Successful != 1 || m.Failed != 2 {
		t.Errorf("counts = %d/%d/%d, want 3/1/2", m.TotalDocuments, m.Successful, m.Failed)
	}
	if m.AverageQuality != 140.0/3 {
		t.Errorf("AverageQuality = %v, want %v", m.AverageQuality, 140.0/3)
	}
	if m.TotalPages != 4 || m.TotalWords != 330 {
		t.Errorf("TotalPages = %d, TotalWords = %d, want 4, 330", m.TotalPages, m.TotalWords)
	}

	wantStatus := []string{StatusSuccess, StatusBelowThreshold, StatusError}
	for i, want := range wantStatus {
		if m.Results[i].Status != want {
			t.Errorf("Results[%d].Status = %q, want %q", i, m.Results[i].Status, want)
		}
	}

	if len(m.AggregateKeywords) != 2 || m.AggregateKeywords[0] != "model:5" {
		t.Errorf("AggregateKeywords = %v, want [model:5 attention:4]", m.AggregateKeywords)
	}
	if m.Results[0].EstimatedTokens != 400 {
		t.Errorf("EstimatedTokens = %d, want 400", m.Results[0].EstimatedTokens)
	}
}

func TestGenerateSummary_Empty(t *testing.T) {
	m := GenerateSummary(Header{}, nil)
	if m.TotalDocuments != 0 || m.AverageQuality != 0 || m.AggregateKeywords != nil {
		t.Errorf("GenerateSummary(nil) = %+v", m)
	}
}
