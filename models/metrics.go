package models

// QualityMetrics holds the counters produced by one post-processing run.
type QualityMetrics struct {
	ParagraphsMerged      int     `yaml:"paragraphs_merged" json:"paragraphs_merged"`
	HeadersRemoved        int     `yaml:"headers_removed" json:"headers_removed"`
	FormattingFixes       int     `yaml:"formatting_fixes" json:"formatting_fixes"`
	LinesProcessed        int     `yaml:"lines_processed" json:"lines_processed"`
	TablesDetected        int     `yaml:"tables_detected" json:"tables_detected"`
	FiguresDetected       int     `yaml:"figures_detected" json:"figures_detected"`
	ReferencesDetected    int     `yaml:"references_detected" json:"references_detected"`
	WordCount             int     `yaml:"word_count" json:"word_count"`
	PagesProcessed        int     `yaml:"pages_processed" json:"pages_processed"`
	ProcessingTimeSeconds float64 `yaml:"processing_time_seconds" json:"processing_time_seconds"`
}

// Score derives a 0-100 quality score from how much repair work was needed.
// A run that processed no lines scores 0.
func (m QualityMetrics) Score() float64 {
	if m.LinesProcessed <= 0 {
		return 0
	}
	lines := float64(m.LinesProcessed)
	mergeEfficiency := 1.0 - float64(m.ParagraphsMerged)/lines
	formattingRatio := float64(m.FormattingFixes) / lines

	score := mergeEfficiency*60 + formattingRatio*20 + 20
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
