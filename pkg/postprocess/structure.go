package postprocess

import (
	"regexp"
	"strings"
)

var (
	figureCaption = regexp.MustCompile(`^Figure\s+\d+`)
	yearToken     = regexp.MustCompile(`\d{4}`)
	etAl          = regexp.MustCompile(`\bet\s+al\.`)
)

// isTableRow reports whether a line looks like a pipe-delimited table row.
func isTableRow(line string) bool {
	return strings.Contains(line, "|") && len(strings.Split(line, "|")) >= 3
}

// CountTables counts runs of consecutive table rows. A run of any length is
// one table.
func CountTables(lines []string) int {
	tables := 0
	inTable := false
	for _, line := range lines {
		if isTableRow(line) {
			if !inTable {
				tables++
				inTable = true
			}
			continue
		}
		inTable = false
	}
	return tables
}

// CountFigures counts lines that open with a "Figure N" caption.
func CountFigures(lines []string) int {
	figures := 0
	for _, line := range lines {
		if figureCaption.MatchString(strings.TrimSpace(line)) {
			figures++
		}
	}
	return figures
}

// CountReferences counts entries after the first "References" heading. An
// entry is any non-blank line carrying a four-digit year or "et al.". The
// references state is never left once entered.
func CountReferences(lines []string) int {
	refs := 0
	inReferences := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "References" {
			inReferences = true
			continue
		}
		if !inReferences || trimmed == "" {
			continue
		}
		if yearToken.MatchString(line) || etAl.MatchString(line) {
			refs++
		}
	}
	return refs
}
