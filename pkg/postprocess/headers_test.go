package postprocess

import (
	"reflect"
	"testing"
)

func TestRemoveHeaders(t *testing.T) {
	headers, err := CompilePatterns("header_patterns", []string{`\d+\s*$`, `Copyright.*`, `^.*\s+et\s+al\.\s*$`})
	if err != nil {
		t.Fatalf("CompilePatterns() error = %v", err)
	}

	tests := []struct {
		name        string
		lines       []string
		wantLines   []string
		wantRemoved int
	}{
		{
			name:        "page numbers and copyright",
			lines:       []string{"12", "Body text", "  Copyright 2021 ACM  ", "More"},
			wantLines:   []string{"Body text", "More"},
			wantRemoved: 2,
		},
		{
			name:        "running author header",
			lines:       []string{"Smith et al.", "Results follow"},
			wantLines:   []string{"Results follow"},
			wantRemoved: 1,
		},
		{
			name:        "prefix match only",
			lines:       []string{"Page 12", "see 12"},
			wantLines:   []string{"Page 12", "see 12"},
			wantRemoved: 0,
		},
		{
			name:        "blank lines survive",
			lines:       []string{"", "3", ""},
			wantLines:   []string{"", ""},
			wantRemoved: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := RemoveHeaders(tt.lines, headers)
			if removed != tt.wantRemoved {
				t.Errorf("RemoveHeaders() removed = %d, want %d", removed, tt.wantRemoved)
			}
			if !reflect.DeepEqual(got, tt.wantLines) {
				t.Errorf("RemoveHeaders() lines = %q, want %q", got, tt.wantLines)
			}
		})
	}
}

// Dropping a line that matches no header pattern never raises the count.
func TestRemoveHeaders_NonMatchingLineRemoval(t *testing.T) {
	headers, err := CompilePatterns("header_patterns", []string{`\d+\s*$`, `Chapter\s+\d+`})
	if err != nil {
		t.Fatalf("CompilePatterns() error = %v", err)
	}

	lines := []string{"1", "Intro text", "Chapter 2", "body", "", "44", "tail 44"}
	_, base := RemoveHeaders(lines, headers)

	for i, line := range lines {
		if headers.Match(line) {
			continue
		}
		reduced := append(append([]string{}, lines[:i]...), lines[i+1:]...)
		if _, got := RemoveHeaders(reduced, headers); got > base {
			t.Errorf("removing %q: headers removed = %d, want <= %d", line, got, base)
		}
	}
}

func TestRemoveHeaders_NoPatterns(t *testing.T) {
	lines := []string{"1", "text"}
	got, removed := RemoveHeaders(lines, nil)
	if removed != 0 || !reflect.DeepEqual(got, lines) {
		t.Errorf("RemoveHeaders(nil) = %q, %d, want input and 0", got, removed)
	}
}
