package manifest

// SummaryManifest is the batch summary written next to a batch's outputs.
// It gives an overview of every document, its quality, and the keywords
// across the whole batch without opening each metadata file.
type SummaryManifest struct {
	GeneratedAt       string            `yaml:"generated_at"`
	InputDirectory    string            `yaml:"input_directory"`
	OutputDirectory   string            `yaml:"output_directory"`
	Profile           string            `yaml:"profile"`
	BatchID           int64             `yaml:"batch_id,omitempty"`
	TotalDocuments    int               `yaml:"total_documents"`
	Successful        int               `yaml:"successful"`
	Failed            int               `yaml:"failed"`
	AverageQuality    float64           `yaml:"average_quality"`
	TotalPages        int               `yaml:"total_pages"`
	TotalWords        int               `yaml:"total_words"`
	AggregateKeywords []string          `yaml:"aggregate_keywords,omitempty"`
	Results           []DocumentSummary `yaml:"results"`
}

// DocumentSummary is the manifest entry for one document.
type DocumentSummary struct {
	InputFile       string   `yaml:"input_file"`
	OutputFile      string   `yaml:"output_file,omitempty"`
	Status          string   `yaml:"status"` // "success", "below_threshold" or "error"
	QualityScore    float64  `yaml:"quality_score"`
	Pages           int      `yaml:"pages"`
	WordCount       int      `yaml:"word_count"`
	EstimatedTokens int      `yaml:"estimated_tokens"`
	Language        string   `yaml:"language,omitempty"`
	Errors          []string `yaml:"errors,omitempty"`
	Warnings        []string `yaml:"warnings,omitempty"`
	TopKeywords     []string `yaml:"top_keywords,omitempty"`
}
