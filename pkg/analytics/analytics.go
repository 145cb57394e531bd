// Package analytics computes keyword frequencies over recognized document text.
package analytics

import (
	"strings"
	"unicode"
)

type Analytics struct{}

// commonWords holds English function words plus the scaffolding vocabulary of
// scanned papers and textbooks (figure captions, page furniture, citation
// fragments) that would otherwise dominate every document's keywords.
var commonWords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "against": {},
	"all": {}, "almost": {}, "along": {}, "already": {}, "also": {},
	"although": {}, "always": {}, "among": {}, "an": {}, "and": {},
	"another": {}, "any": {}, "are": {}, "around": {}, "as": {}, "at": {},

	"be": {}, "because": {}, "been": {}, "before": {}, "being": {},
	"below": {}, "between": {}, "both": {}, "but": {}, "by": {},

	"can": {}, "cannot": {}, "could": {},

	"did": {}, "do": {}, "does": {}, "doing": {}, "done": {}, "down": {},
	"during": {},

	"each": {}, "either": {}, "else": {}, "enough": {}, "especially": {},
	"etc": {}, "even": {}, "every": {},

	"few": {}, "for": {}, "from": {}, "further": {},

	"had": {}, "has": {}, "have": {}, "having": {}, "he": {}, "hence": {},
	"her": {}, "here": {}, "herein": {}, "him": {}, "his": {}, "how": {},
	"however": {},

	"if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"itself": {},

	"just": {},

	"less": {}, "let": {}, "like": {}, "likely": {},

	"made": {}, "make": {}, "many": {}, "may": {}, "more": {}, "moreover": {},
	"most": {}, "much": {}, "must": {},

	"neither": {}, "never": {}, "no": {}, "nor": {}, "not": {}, "now": {},

	"of": {}, "off": {}, "often": {}, "on": {}, "once": {}, "one": {},
	"only": {}, "onto": {}, "or": {}, "other": {}, "others": {},
	"otherwise": {}, "our": {}, "out": {}, "over": {}, "own": {},

	"per": {}, "perhaps": {},

	"rather": {}, "same": {}, "see": {}, "several": {}, "she": {},
	"should": {}, "since": {}, "so": {}, "some": {}, "such": {},

	"than": {}, "that": {}, "the": {}, "their": {}, "them": {}, "then": {},
	"there": {}, "thereby": {}, "therefore": {}, "these": {}, "they": {},
	"this": {}, "those": {}, "through": {}, "thus": {}, "to": {},
	"together": {}, "too": {}, "toward": {}, "towards": {},

	"under": {}, "until": {}, "up": {}, "upon": {}, "us": {}, "use": {},
	"used": {}, "using": {},

	"very": {}, "via": {},

	"was": {}, "we": {}, "well": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "whereas": {}, "whether": {}, "which": {}, "while": {},
	"who": {}, "whose": {}, "why": {}, "will": {}, "with": {}, "within": {},
	"without": {}, "would": {},

	"yet": {}, "you": {}, "your": {},

	// Scanned-document furniture
	"al": {}, "et": {}, "fig": {}, "figure": {}, "figures": {},
	"table": {}, "tables": {}, "page": {}, "pages": {}, "pp": {},
	"vol": {}, "chapter": {}, "section": {}, "eq": {}, "ibid": {},
	"doi": {}, "journal": {}, "proceedings": {}, "conference": {},
	"exercise": {}, "lesson": {},
}

// IsStopword checks if a word is a common stopword that should be filtered out.
func IsStopword(word string) bool {
	_, exists := commonWords[strings.ToLower(word)]
	return exists
}

// WordFrequency counts content words in markdown text. Markdown markers and
// punctuation are trimmed from each token; numbers and single letters are
// dropped.
func (a *Analytics) WordFrequency(text string) map[string]int {
	words := strings.Fields(strings.ToLower(text))
	frequencies := make(map[string]int)

	for _, word := range words {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})

		if len([]rune(word)) < 2 || isNumeric(word) {
			continue
		}
		if _, exists := commonWords[word]; exists {
			continue
		}

		frequencies[word]++
	}

	return frequencies
}

// TopNWords returns the n most frequent content words, most frequent first.
func (a *Analytics) TopNWords(text string, n int) []string {
	counts := sortedCounts(a.WordFrequency(text))

	limit := n
	if len(counts) < n {
		limit = len(counts)
	}

	topN := make([]string, limit)
	for i := 0; i < limit; i++ {
		topN[i] = counts[i].Word
	}

	return topN
}

func isNumeric(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) && r != '.' && r != ',' {
			return false
		}
	}
	return true
}
