package models

import "testing"

func TestQualityMetricsScore(t *testing.T) {
	tests := []struct {
		name string
		m    QualityMetrics
		want float64
	}{
		{"no lines", QualityMetrics{}, 0},
		{"no lines with merges", QualityMetrics{ParagraphsMerged: 5, FormattingFixes: 3}, 0},
		{"clean run", QualityMetrics{LinesProcessed: 10}, 80},
		{"every line merged", QualityMetrics{LinesProcessed: 4, ParagraphsMerged: 4}, 20},
		{"every line fixed", QualityMetrics{LinesProcessed: 4, FormattingFixes: 4}, 100},
		{"more merges than lines clamps", QualityMetrics{LinesProcessed: 1, ParagraphsMerged: 3}, 0},
		{"fixes above lines clamps", QualityMetrics{LinesProcessed: 1, FormattingFixes: 10}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Score(); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		in      string
		want    DocumentType
		wantErr bool
	}{
		{"", DocumentTypeGeneric, false},
		{"Academic_Paper", DocumentTypeAcademicPaper, false},
		{" language_textbook ", DocumentTypeLanguageTextbook, false},
		{"custom", DocumentTypeCustom, false},
		{"novel", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDocumentType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDocumentType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDocumentType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProfileInstruction(t *testing.T) {
	p := DefaultProfile()
	p.SystemPrompt = "Convert the pages."
	if got := p.Instruction(); got != "Convert the pages." {
		t.Errorf("Instruction() = %q, want prompt only", got)
	}

	p.SpecialInstructions = []string{"Keep tables", "Skip headers"}
	want := "Convert the pages.\n\nADDITIONAL INSTRUCTIONS:\n- Keep tables\n- Skip headers\n"
	if got := p.Instruction(); got != want {
		t.Errorf("Instruction() = %q, want %q", got, want)
	}
}
