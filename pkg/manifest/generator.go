package manifest

import (
	"time"

	"github.com/dtnitsch/llm-doc-processor/models"
	"github.com/dtnitsch/llm-doc-processor/pkg/analytics"
)

// KeywordLimit is how many keywords each entry and the aggregate carry.
const KeywordLimit = 25

const (
	StatusSuccess        = "success"
	StatusBelowThreshold = "below_threshold"
	StatusError          = "error"
)

// Header carries the batch-level fields of a manifest.
type Header struct {
	InputDirectory  string
	OutputDirectory string
	Profile         string
	BatchID         int64
}

// GenerateSummary builds a manifest from the results of one batch, in the
// order given. Keyword counts are aggregated across all documents.
func GenerateSummary(h Header, results []models.ProcessingResult) *SummaryManifest {
	m := &SummaryManifest{
		GeneratedAt:     time.Now().Format(time.RFC3339),
		InputDirectory:  h.InputDirectory,
		OutputDirectory: h.OutputDirectory,
		Profile:         h.Profile,
		BatchID:         h.BatchID,
		TotalDocuments:  len(results),
	}

	var counts []map[string]int
	var qualityTotal float64
	for _, result := range results {
		summary := DocumentSummary{
			InputFile:       result.InputPath,
			OutputFile:      result.OutputPath,
			QualityScore:    result.QualityScore,
			Pages:           result.Metrics.PagesProcessed,
			WordCount:       result.Metrics.WordCount,
			EstimatedTokens: EstimateTokens(result.Metrics.WordCount),
			Language:        result.Language,
			Errors:          result.Errors,
			Warnings:        result.Warnings,
		}

		switch {
		case result.Success:
			m.Successful++
			summary.Status = StatusSuccess
		case result.Metrics.WordCount > 0:
			m.Failed++
			summary.Status = StatusBelowThreshold
		default:
			m.Failed++
			summary.Status = StatusError
		}

		if result.Keywords != nil {
			summary.TopKeywords = analytics.TopKeywords(result.Keywords, KeywordLimit)
			counts = append(counts, result.Keywords)
		}

		qualityTotal += result.QualityScore
		m.TotalPages += result.Metrics.PagesProcessed
		m.TotalWords += result.Metrics.WordCount
		m.Results = append(m.Results, summary)
	}

	if len(results) > 0 {
		m.AverageQuality = qualityTotal / float64(len(results))
	}
	if len(counts) > 0 {
		m.AggregateKeywords = analytics.TopKeywords(analytics.Reduce(counts), KeywordLimit)
	}
	return m
}

// EstimateTokens approximates model tokens from a word count.
func EstimateTokens(words int) int {
	return int(float64(words) / 0.75)
}
