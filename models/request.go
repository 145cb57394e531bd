package models

// ProcessingRequest describes one document to run through recognition and
// post-processing.
type ProcessingRequest struct {
	InputPath  string
	OutputPath string // empty means "<stem>_processed.md" beside the input
	Profile    Profile
	StartPage  int // 1-based, 0 means first page
	EndPage    int // 1-based inclusive, 0 means last page
	Force      bool
	BatchID    int64 // run history grouping, 0 when processed on its own
}

// BatchResult records what happened to one group of pages sent to the
// recognizer.
type BatchResult struct {
	BatchNum  int      `yaml:"batch_num" json:"batch_num"`
	Pages     []string `yaml:"pages" json:"pages"`
	PageCount int      `yaml:"page_count,omitempty" json:"page_count,omitempty"`
	Text      string   `yaml:"-" json:"text,omitempty"`
	Cached    bool     `yaml:"cached,omitempty" json:"cached,omitempty"`
	Error     string   `yaml:"error,omitempty" json:"error,omitempty"`
}

// OK reports whether the batch produced text.
func (b BatchResult) OK() bool {
	return b.Error == "" && b.Text != ""
}

// ProcessingResult is the outcome of processing one document.
type ProcessingResult struct {
	Success        bool           `yaml:"success" json:"success"`
	InputPath      string         `yaml:"input_path" json:"input_path"`
	OutputPath     string         `yaml:"output_path,omitempty" json:"output_path,omitempty"`
	Metrics        QualityMetrics `yaml:"metrics" json:"metrics"`
	QualityScore   float64        `yaml:"quality_score" json:"quality_score"`
	Language       string         `yaml:"language,omitempty" json:"language,omitempty"`
	Errors         []string       `yaml:"errors,omitempty" json:"errors,omitempty"`
	Warnings       []string       `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	ProcessingTime float64        `yaml:"processing_time" json:"processing_time"`
	BatchResults   []BatchResult  `yaml:"batch_results,omitempty" json:"batch_results,omitempty"`
	RunID          int64          `yaml:"run_id,omitempty" json:"run_id,omitempty"`
	Keywords       map[string]int `yaml:"-" json:"-"`
}

// BatchRequest describes a directory of documents processed with one profile.
type BatchRequest struct {
	InputDirectory  string
	OutputDirectory string
	Profile         Profile
	FilePatterns    []string
	Recursive       bool
	Workers         int
	Force           bool
}
