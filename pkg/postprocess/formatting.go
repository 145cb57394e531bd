package postprocess

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)
	brokenWord    = regexp.MustCompile(`(\p{Ll})- (\p{Ll})`)
)

// NormalizeFormatting collapses whitespace runs, joins words broken as
// "<lower>- <lower>" and trims each line. It returns the cleaned lines and
// how many of them changed.
func NormalizeFormatting(lines []string) ([]string, int) {
	out := make([]string, len(lines))
	fixes := 0
	for i, line := range lines {
		cleaned := whitespaceRun.ReplaceAllString(line, " ")
		cleaned = brokenWord.ReplaceAllString(cleaned, "$1$2")
		cleaned = strings.TrimSpace(cleaned)
		if cleaned != line {
			fixes++
		}
		out[i] = cleaned
	}
	return out, fixes
}
