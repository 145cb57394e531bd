// Package language identifies the natural language of recognized text.
package language

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// Result is the detected language of a text. Code is the lowercase ISO
// 639-1 code, empty when no language could be determined.
type Result struct {
	Code       string  `yaml:"code" json:"code"`
	Name       string  `yaml:"name" json:"name"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
}

// Supported lists the languages the detector chooses between: the ones the
// built-in profiles and OCR language packs cover.
var Supported = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Latin,
}

// minRunes is the shortest sample worth classifying.
const minRunes = 20

// maxSample caps how much text is classified; the opening of a document is
// representative and detection cost grows with length.
const maxSample = 8000

var defaultDetector = sync.OnceValue(func() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(Supported...).
		WithMinimumRelativeDistance(0.1).
		Build()
})

// Detect returns the most likely language of text. Short or ambiguous text
// yields a zero Result.
func Detect(text string) Result {
	sample := strings.TrimSpace(text)
	if len([]rune(sample)) < minRunes {
		return Result{}
	}
	if len(sample) > maxSample {
		sample = truncate(sample, maxSample)
	}

	detector := defaultDetector()
	lang, ok := detector.DetectLanguageOf(sample)
	if !ok {
		return Result{}
	}

	return Result{
		Code:       strings.ToLower(lang.IsoCode639_1().String()),
		Name:       lang.String(),
		Confidence: detector.ComputeLanguageConfidence(sample, lang),
	}
}

// truncate cuts s to at most n bytes without splitting a word.
func truncate(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	s = s[:n]
	if i := strings.LastIndexAny(s, " \n\t"); i > 0 {
		s = s[:i]
	}
	return s
}
