package recognizer

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"nfc", "Cafe\u0301", "Caf\u00e9"},
		{"crlf", "a\r\nb\r\n", "a\nb"},
		{"fenced markdown", "```markdown\n# Title\n\nBody\n```", "# Title\n\nBody"},
		{"bare fence", "```\nplain\n```", "plain"},
		{"inner fence untouched", "Intro\n```\ncode\n```", "Intro\n```\ncode\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean_HTMLTable(t *testing.T) {
	in := "Before\n<table><tr><th>Verb</th><th>Form</th></tr><tr><td>être</td><td onclick=\"x()\">suis</td></tr></table>\nAfter"
	got := Clean(in)

	if strings.Contains(got, "<table") || strings.Contains(got, "onclick") {
		t.Errorf("Clean() left HTML behind: %q", got)
	}
	for _, want := range []string{"Before", "After", "| Verb", "être", "suis"} {
		if !strings.Contains(got, want) {
			t.Errorf("Clean() = %q, missing %q", got, want)
		}
	}
}

func TestCombine(t *testing.T) {
	got := Combine([]string{"first batch", "", "  \n", "second batch"})
	if got != "first batch\n\nsecond batch" {
		t.Errorf("Combine() = %q", got)
	}
	if Combine(nil) != "" {
		t.Error("Combine(nil) should be empty")
	}
}
