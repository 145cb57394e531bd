package postprocess

import "testing"

func TestCountTables(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"empty", nil, 0},
		{"one run of three rows", []string{"a | b | c", "1 | 2 | 3", "4 | 5 | 6"}, 1},
		{"blank separates runs", []string{"| a | b |", "", "| c | d |"}, 2},
		{"text separates runs", []string{"| a | b |", "between", "| c | d |", "| e | f |"}, 2},
		{"single pipe ignored", []string{"a | b"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountTables(tt.lines); got != tt.want {
				t.Errorf("CountTables() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountFigures(t *testing.T) {
	lines := []string{
		"Figure 1 Overview",
		"  Figure 12: detail",
		"See Figure 3 for more",
		"Figure A",
		"Figures 4 and 5",
	}
	if got := CountFigures(lines); got != 2 {
		t.Errorf("CountFigures() = %d, want 2", got)
	}
}

func TestCountReferences(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{
			name:  "before heading not counted",
			lines: []string{"Smith 2020 said", "References", "Jones, A. (2019). Title.", "Brown et al. Paper.", "", "no year here"},
			want:  2,
		},
		{
			name:  "heading must be exact",
			lines: []string{"References and notes", "Jones 2019"},
			want:  0,
		},
		{
			name:  "state persists past blank lines and headings",
			lines: []string{"  References  ", "", "## Appendix", "Data from 2018"},
			want:  1,
		},
		{
			name:  "no references",
			lines: []string{"text 2020"},
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountReferences(tt.lines); got != tt.want {
				t.Errorf("CountReferences() = %d, want %d", got, tt.want)
			}
		})
	}
}
