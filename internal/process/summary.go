package process

import (
	"github.com/dtnitsch/llm-doc-processor/models"
	"github.com/dtnitsch/llm-doc-processor/pkg/analytics"
)

const (
	statusSuccess        = "success"
	statusPartialFailure = "partial_failure"
	statusFailed         = "failed"
	statusBelowThreshold = "below_threshold"
)

// BuildDocumentOutput condenses a processing result for printing.
func BuildDocumentOutput(r models.ProcessingResult) DocumentOutput {
	out := DocumentOutput{
		Input:        r.InputPath,
		Output:       r.OutputPath,
		QualityScore: r.QualityScore,
		Pages:        r.Metrics.PagesProcessed,
		Words:        r.Metrics.WordCount,
		Language:     r.Language,
		TimeSeconds:  r.ProcessingTime,
		RunID:        r.RunID,
		Errors:       r.Errors,
		Warnings:     r.Warnings,
	}
	switch {
	case r.Success:
		out.Status = statusSuccess
	case r.Metrics.WordCount > 0 && len(r.Errors) == 0:
		out.Status = statusBelowThreshold
	default:
		out.Status = statusFailed
	}
	return out
}

// BuildStats aggregates results. The average quality includes failed
// documents, which score 0.
func BuildStats(results []models.ProcessingResult, minQuality float64) Stats {
	stats := Stats{TotalDocuments: len(results), MinQuality: minQuality}

	var counts []map[string]int
	var quality float64
	for _, r := range results {
		if r.Success {
			stats.Successful++
		} else {
			stats.Failed++
		}
		quality += r.QualityScore
		stats.TotalPages += r.Metrics.PagesProcessed
		if r.Keywords != nil {
			counts = append(counts, r.Keywords)
		}
	}

	if len(results) > 0 {
		stats.AverageQuality = quality / float64(len(results))
		stats.SuccessRate = float64(stats.Successful) / float64(len(results)) * 100
	}
	if len(counts) > 0 {
		stats.TopKeywords = analytics.TopKeywords(analytics.Reduce(counts), 10)
	}
	return stats
}

// overallStatus reports success only when every document succeeded.
func overallStatus(stats Stats) string {
	switch {
	case stats.TotalDocuments > 0 && stats.Failed == 0:
		return statusSuccess
	case stats.Successful > 0:
		return statusPartialFailure
	default:
		return statusFailed
	}
}

// BenchmarkPassed applies the benchmark criterion: the average quality over
// all documents must reach the profile's minimum.
func BenchmarkPassed(stats Stats) bool {
	return stats.TotalDocuments > 0 && stats.AverageQuality >= stats.MinQuality
}
