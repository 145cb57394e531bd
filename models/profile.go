package models

import "strings"

// Profile parameterizes recognition and post-processing for one class of
// documents. It is owned by the caller and never mutated by the pipeline.
type Profile struct {
	Name         string       `yaml:"name" json:"name"`
	DocumentType DocumentType `yaml:"document_type" json:"document_type"`
	Description  string       `yaml:"description,omitempty" json:"description,omitempty"`

	// Recognition settings
	ModelName    string   `yaml:"model_name" json:"model_name"`
	BatchSize    int      `yaml:"batch_size" json:"batch_size"`
	ImageScale   float64  `yaml:"image_scale" json:"image_scale"`
	OCRLanguages []string `yaml:"ocr_languages,omitempty" json:"ocr_languages,omitempty"` // tesseract codes, e.g. "eng"

	// Instructions for the vision model
	SystemPrompt        string   `yaml:"system_prompt" json:"system_prompt"`
	SpecialInstructions []string `yaml:"special_instructions,omitempty" json:"special_instructions,omitempty"`

	// Post-processing toggles
	EnableParagraphMerging    bool `yaml:"enable_paragraph_merging" json:"enable_paragraph_merging"`
	EnableHeaderRemoval       bool `yaml:"enable_header_removal" json:"enable_header_removal"`
	EnableTableDetection      bool `yaml:"enable_table_detection" json:"enable_table_detection"`
	EnableFigureDetection     bool `yaml:"enable_figure_detection" json:"enable_figure_detection"`
	EnableReferenceFormatting bool `yaml:"enable_reference_formatting" json:"enable_reference_formatting"`

	// Quality thresholds
	MinQualityScore float64 `yaml:"min_quality_score" json:"min_quality_score"`
	MaxRetries      int     `yaml:"max_retries" json:"max_retries"`

	// Ordered pattern lists; declaration order is significant.
	HeaderPatterns    []string          `yaml:"header_patterns,omitempty" json:"header_patterns,omitempty"`
	SectionPatterns   []string          `yaml:"section_patterns,omitempty" json:"section_patterns,omitempty"`
	SpecialFormatting map[string]string `yaml:"special_formatting,omitempty" json:"special_formatting,omitempty"`
}

// DefaultProfile returns a generic profile with every toggle enabled.
func DefaultProfile() Profile {
	return Profile{
		Name:                      "Generic",
		DocumentType:              DocumentTypeGeneric,
		ModelName:                 "gemini-2.5-flash",
		BatchSize:                 5,
		ImageScale:                2.0,
		EnableParagraphMerging:    true,
		EnableHeaderRemoval:       true,
		EnableTableDetection:      true,
		EnableFigureDetection:     true,
		EnableReferenceFormatting: true,
		MinQualityScore:           75.0,
		MaxRetries:                2,
	}
}

// Instruction returns the natural-language instruction sent alongside each
// batch of page images.
func (p Profile) Instruction() string {
	if len(p.SpecialInstructions) == 0 {
		return p.SystemPrompt
	}
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(p.SystemPrompt, "\n"))
	sb.WriteString("\n\nADDITIONAL INSTRUCTIONS:\n")
	for _, inst := range p.SpecialInstructions {
		sb.WriteString("- ")
		sb.WriteString(inst)
		sb.WriteByte('\n')
	}
	return sb.String()
}
