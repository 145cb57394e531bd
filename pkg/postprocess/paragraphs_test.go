package postprocess

import (
	"reflect"
	"testing"
)

func TestDecideMerge(t *testing.T) {
	tests := []struct {
		name       string
		prev, cur  string
		wantAction mergeAction
		wantText   string
	}{
		{"sentence end", "The end.", "then more", noMerge, ""},
		{"colon ends intro", "As follows:", "items here", noMerge, ""},
		{"question mark with trailing space", "Why?  ", "because", noMerge, ""},
		{"lowercase continuation", "The cat", "sat on", appendLine, ""},
		{"accented lowercase continuation", "Il était", "écrit ici", appendLine, ""},
		{"hyphen between letters", "exam-", "ple text", spliceLine, "example text"},
		{"hyphen before capital kept", "well-", "Known case", spliceLine, "well-Known case"},
		{"hyphen after digit kept", "pages 10-", "20 only", spliceLine, "pages 10-20 only"},
		{"uppercase fallback merges", "The quick brown", "Fox jumped", appendLine, ""},
		{"semicolon blocks fallback", "first clause;", "Second clause", noMerge, ""},
		{"section keyword blocks fallback", "some words", "Introduction to the topic", noMerge, ""},
		{"bold markers meet", "the **", "**bold** word", spliceLine, "the bold** word"},
		{"italic markers meet", "an*", "*aside", spliceLine, "anaside"},
		{"italic guard on spaced marker", "list *", "*item", appendLine, ""},
		{"open bold span", "Hello **wor", "ld** there", spliceLine, "Hello **world** there"},
		{"open italic span", "an *emph", "asis* here", spliceLine, "an *emphasis* here"},
		{"closed span does not splice", "Hello **world**", "and more", appendLine, ""},
		{"bold span wrapped at word break", "He said **this is", "important** to me", appendLine, ""},
		{"italic span wrapped at word break", "This is *very good", "indeed* here", appendLine, ""},
		{"hyphen inside multi-word bold span", "A **bold exam-", "ple** text", spliceLine, "A **bold example** text"},
		{"hyphen inside cut bold token", "A **exam-", "ple** text", spliceLine, "A **example** text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decideMerge(tt.prev, tt.cur)
			if got.Action != tt.wantAction {
				t.Fatalf("decideMerge(%q, %q) action = %v, want %v", tt.prev, tt.cur, got.Action, tt.wantAction)
			}
			if got.Action == spliceLine && got.Text != tt.wantText {
				t.Errorf("decideMerge(%q, %q) text = %q, want %q", tt.prev, tt.cur, got.Text, tt.wantText)
			}
		})
	}
}

func TestReconstructParagraphs(t *testing.T) {
	sections, err := CompilePatterns("section_patterns", []string{`(Unit|Lesson)\s+\d+`})
	if err != nil {
		t.Fatalf("CompilePatterns() error = %v", err)
	}

	tests := []struct {
		name       string
		lines      []string
		want       []string
		wantMerged int
	}{
		{
			name:       "soft wrapped paragraph",
			lines:      []string{"The cat", "sat on", "the mat."},
			want:       []string{"The cat sat on the mat."},
			wantMerged: 2,
		},
		{
			name:       "blank line splits",
			lines:      []string{"first part", "", "second part"},
			want:       []string{"first part", "", "second part"},
			wantMerged: 0,
		},
		{
			name:       "sentence end starts new paragraph",
			lines:      []string{"Done here.", "Another one"},
			want:       []string{"Done here.", "Another one"},
			wantMerged: 0,
		},
		{
			name:       "builtin special lines kept verbatim",
			lines:      []string{"intro text", "## Heading", "- bullet", "ANNE: Hello", "Figure 3 A cat"},
			want:       []string{"intro text", "## Heading", "- bullet", "ANNE: Hello", "Figure 3 A cat"},
			wantMerged: 0,
		},
		{
			name:       "profile section pattern",
			lines:      []string{"some text", "Unit 4 Travel", "more text"},
			want:       []string{"some text", "Unit 4 Travel", "more text"},
			wantMerged: 0,
		},
		{
			name:       "trailing whitespace trimmed",
			lines:      []string{"The cat   ", "sat\t"},
			want:       []string{"The cat sat"},
			wantMerged: 1,
		},
		{
			name:       "semicolon flushes",
			lines:      []string{"one;", "Two"},
			want:       []string{"one;", "Two"},
			wantMerged: 0,
		},
		{
			name:       "hyphen splice inside paragraph",
			lines:      []string{"a long exam-", "ple of", "text."},
			want:       []string{"a long example of text."},
			wantMerged: 2,
		},
		{
			name:       "bold span wrapped at word break keeps the space",
			lines:      []string{"He said **this is", "important** to me."},
			want:       []string{"He said **this is important** to me."},
			wantMerged: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, merged := ReconstructParagraphs(tt.lines, sections)
			if merged != tt.wantMerged {
				t.Errorf("ReconstructParagraphs() merged = %d, want %d", merged, tt.wantMerged)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReconstructParagraphs() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Reconstructed output is a fixed point: a second pass merges nothing.
func TestReconstructParagraphs_FixedPoint(t *testing.T) {
	inputs := [][]string{
		{"The cat", "sat on", "the mat.", "", "References", "Smith, 2020."},
		{"Hello **wor", "ld** there", "and then", "Something Else", "ends;", "Next line"},
		{"An exam-", "ple of", "Introduction here", "## Title", "body text", "continues", "Done."},
		{"AB", "C: x", "tail", "| a | b |", "| c | d |", "after table"},
		{"", "", "lonely"},
	}
	for _, in := range inputs {
		first, _ := ReconstructParagraphs(in, nil)
		second, merged := ReconstructParagraphs(first, nil)
		if len(second) != len(first) {
			t.Errorf("second pass over %q changed line count %d -> %d", first, len(first), len(second))
		}
		if merged != 0 {
			t.Errorf("second pass over %q merged = %d, want 0", first, merged)
		}
	}
}

func TestEndsSentence(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Done.", true},
		{"Really?", true},
		{"Wow!  ", true},
		{"Note:", true},
		{"no end", false},
		{"comma,", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := endsSentence(tt.line); got != tt.want {
			t.Errorf("endsSentence(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
