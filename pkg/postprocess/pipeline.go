// Package postprocess repairs recognized page text into clean markdown.
//
// A Pipeline is built once from a profile and may be shared by any number of
// goroutines: it holds only compiled patterns and never mutates them.
package postprocess

import (
	"strings"

	"github.com/dtnitsch/llm-doc-processor/models"
)

// Result is the output of one pipeline run.
type Result struct {
	Text    string
	Metrics models.QualityMetrics
}

// Score is the quality score derived from the run's metrics.
func (r Result) Score() float64 {
	return r.Metrics.Score()
}

// Pipeline runs header removal, paragraph reconstruction, structure
// detection and formatting normalization over a text blob.
type Pipeline struct {
	profile  models.Profile
	headers  Patterns
	sections Patterns
}

// New compiles the profile's header and section patterns. A malformed
// pattern is reported as a *PatternError before any text is processed.
func New(profile models.Profile) (*Pipeline, error) {
	headers, err := CompilePatterns("header_patterns", profile.HeaderPatterns)
	if err != nil {
		return nil, err
	}
	sections, err := CompilePatterns("section_patterns", profile.SectionPatterns)
	if err != nil {
		return nil, err
	}
	return &Pipeline{profile: profile, headers: headers, sections: sections}, nil
}

// Profile returns the profile the pipeline was built from.
func (p *Pipeline) Profile() models.Profile {
	return p.profile
}

// Process runs every enabled stage over text. It never fails.
func (p *Pipeline) Process(text string) Result {
	var m models.QualityMetrics

	lines := strings.Split(text, "\n")
	m.LinesProcessed = len(lines)

	if p.profile.EnableHeaderRemoval {
		lines, m.HeadersRemoved = RemoveHeaders(lines, p.headers)
	}
	if p.profile.EnableParagraphMerging {
		lines, m.ParagraphsMerged = ReconstructParagraphs(lines, p.sections)
	}

	// Detectors only count; they never rewrite lines.
	if p.profile.EnableTableDetection {
		m.TablesDetected = CountTables(lines)
	}
	if p.profile.EnableFigureDetection {
		m.FiguresDetected = CountFigures(lines)
	}
	if p.profile.EnableReferenceFormatting {
		m.ReferencesDetected = CountReferences(lines)
	}

	lines, m.FormattingFixes = NormalizeFormatting(lines)

	final := strings.Join(lines, "\n")
	m.WordCount = len(strings.Fields(final))

	return Result{Text: final, Metrics: m}
}
