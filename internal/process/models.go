package process

import "github.com/dtnitsch/llm-doc-processor/models"

// Job is one document queued for a batch worker.
type Job struct {
	Index   int
	Request models.ProcessingRequest
}

// Result pairs a finished document with its queue position.
type Result struct {
	Index  int
	Result models.ProcessingResult
}

// DocumentOutput is the printed summary of one processed document.
type DocumentOutput struct {
	Input        string   `json:"input" yaml:"input"`
	Output       string   `json:"output,omitempty" yaml:"output,omitempty"`
	Status       string   `json:"status" yaml:"status"`
	QualityScore float64  `json:"quality_score" yaml:"quality_score"`
	Pages        int      `json:"pages" yaml:"pages"`
	Words        int      `json:"words" yaml:"words"`
	Language     string   `json:"language,omitempty" yaml:"language,omitempty"`
	TimeSeconds  float64  `json:"time_seconds" yaml:"time_seconds"`
	RunID        int64    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Errors       []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings     []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// FinalOutput is the structured output for a batch or benchmark run.
type FinalOutput struct {
	Status       string           `json:"status" yaml:"status"`
	Profile      string           `json:"profile" yaml:"profile"`
	BatchID      int64            `json:"batch_id,omitempty" yaml:"batch_id,omitempty"`
	ManifestPath string           `json:"manifest_path,omitempty" yaml:"manifest_path,omitempty"`
	Results      []DocumentOutput `json:"results" yaml:"results"`
	Stats        Stats            `json:"stats" yaml:"stats"`
}

// Stats provides summary statistics for the run.
type Stats struct {
	TotalDocuments   int      `json:"total_documents" yaml:"total_documents"`
	Successful       int      `json:"successful" yaml:"successful"`
	Failed           int      `json:"failed" yaml:"failed"`
	SuccessRate      float64  `json:"success_rate" yaml:"success_rate"`
	AverageQuality   float64  `json:"average_quality" yaml:"average_quality"`
	MinQuality       float64  `json:"min_quality_score" yaml:"min_quality_score"`
	TotalPages       int      `json:"total_pages" yaml:"total_pages"`
	TotalTimeSeconds float64  `json:"total_time_seconds" yaml:"total_time_seconds"`
	TopKeywords      []string `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
}
