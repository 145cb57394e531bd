package analytics

import (
	"fmt"
	"sort"
	"strings"
)

type wordCount struct {
	Word  string
	Count int
}

// sortedCounts orders by count descending, then word ascending so equal
// counts come out the same way on every run.
func sortedCounts(wordCounts map[string]int) []wordCount {
	counts := make([]wordCount, 0, len(wordCounts))
	for k, v := range wordCounts {
		if isValidKeyword(k) {
			counts = append(counts, wordCount{k, v})
		}
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})
	return counts
}

// isValidKeyword rejects tokens with unmatched delimiters or quotes, which
// usually come from recognition noise around formulas and citations.
func isValidKeyword(word string) bool {
	if strings.HasSuffix(word, ":") || strings.HasSuffix(word, "=") {
		return false
	}

	pairs := [][2]string{{"(", ")"}, {"[", "]"}, {"{", "}"}}
	for _, p := range pairs {
		if strings.Count(word, p[0]) != strings.Count(word, p[1]) {
			return false
		}
	}

	if strings.Count(word, "\"")%2 != 0 {
		return false
	}

	return true
}

// Reduce aggregates per-document word counts into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}

// TopKeywords returns the top n keywords formatted as "word:count"
// (e.g. "learning:42").
func TopKeywords(wordCounts map[string]int, n int) []string {
	counts := sortedCounts(wordCounts)

	limit := n
	if len(counts) < n {
		limit = len(counts)
	}
	if limit < 0 {
		limit = 0
	}

	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", counts[i].Word, counts[i].Count)
	}

	return keywords
}
