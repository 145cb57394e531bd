package analytics

import (
	"reflect"
	"testing"
)

func TestWordFrequency(t *testing.T) {
	a := &Analytics{}
	text := "## Neural Networks\n\nThe **neural** network, see Figure 2. Networks (2019) learn; *neural*!"

	got := a.WordFrequency(text)
	want := map[string]int{
		"neural":   3,
		"networks": 2,
		"network":  1,
		"learn":    1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WordFrequency() = %v, want %v", got, want)
	}
}

func TestWordFrequency_NonASCII(t *testing.T) {
	a := &Analytics{}
	got := a.WordFrequency("Les élèves étudient. Élèves!")
	if got["élèves"] != 2 {
		t.Errorf("WordFrequency()[élèves] = %d, want 2", got["élèves"])
	}
}

func TestTopNWords(t *testing.T) {
	a := &Analytics{}
	got := a.TopNWords("beta alpha beta gamma alpha beta", 2)
	want := []string{"beta", "alpha"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopNWords() = %v, want %v", got, want)
	}
}

func TestTopKeywords(t *testing.T) {
	counts := map[string]int{"model": 5, "data": 5, "loss": 2, "f(x": 9}

	got := TopKeywords(counts, 2)
	want := []string{"data:5", "model:5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords() = %v, want %v", got, want)
	}

	if got := TopKeywords(counts, 10); len(got) != 3 {
		t.Errorf("TopKeywords(10) returned %d keywords, want 3 (malformed token dropped)", len(got))
	}
}

func TestReduce(t *testing.T) {
	got := Reduce([]map[string]int{{"a": 1, "b": 2}, {"b": 3}})
	want := map[string]int{"a": 1, "b": 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce() = %v, want %v", got, want)
	}
}

func TestIsValidKeyword(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"gradient", true},
		{"f(x)", true},
		{"f(x", false},
		{"[1", false},
		{"key:", false},
		{"\"quoted", false},
	}
	for _, tt := range tests {
		if got := isValidKeyword(tt.word); got != tt.want {
			t.Errorf("isValidKeyword(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}
