package postprocess

import "strings"

// RemoveHeaders drops every line whose trimmed content matches one of the
// header patterns and returns the remaining lines with the number removed.
// Surviving lines keep their original content and order.
func RemoveHeaders(lines []string, headers Patterns) ([]string, int) {
	if len(headers) == 0 {
		return lines, 0
	}

	kept := make([]string, 0, len(lines))
	removed := 0
	for _, line := range lines {
		if headers.index(strings.TrimSpace(line)) >= 0 {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	return kept, removed
}
