// Package detector looks for cheap textual signals of what kind of document a
// recognized text came from.
package detector

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/llm-doc-processor/models"
)

// Signals contains detection results from a single pass over final text.
type Signals struct {
	// Academic signals
	DOIs             []string `yaml:"dois,omitempty" json:"dois,omitempty"`
	ArXivIDs         []string `yaml:"arxiv_ids,omitempty" json:"arxiv_ids,omitempty"`
	HasLaTeX         bool     `yaml:"has_latex" json:"has_latex"`
	NumericCitations int      `yaml:"numeric_citations" json:"numeric_citations"`
	AuthorCitations  int      `yaml:"author_citations" json:"author_citations"`
	HasAbstract      bool     `yaml:"has_abstract" json:"has_abstract"`
	HasReferences    bool     `yaml:"has_references" json:"has_references"`
	AcademicScore    float64  `yaml:"academic_score" json:"academic_score"` // 0-10

	// Textbook signals
	ExerciseCount   int     `yaml:"exercise_count" json:"exercise_count"`
	VocabularyLists int     `yaml:"vocabulary_lists" json:"vocabulary_lists"`
	TextbookScore   float64 `yaml:"textbook_score" json:"textbook_score"` // 0-10

	SuggestedType models.DocumentType `yaml:"suggested_type" json:"suggested_type"`
}

var (
	doiPattern      = regexp.MustCompile(`\b10\.\d{4,9}/[^\s"<>]+`)
	arxivPattern    = regexp.MustCompile(`(?i)arXiv:\s?(\d{4}\.\d{4,5})(v\d+)?`)
	numericCitation = regexp.MustCompile(`\[\d+(?:\s*[,\-–]\s*\d+)*\]`)
	authorCitation  = regexp.MustCompile(`\b[A-Z][a-zA-Z'\-]+ et al\.`)
	abstractHeading = regexp.MustCompile(`(?im)^\s*(?:#+\s*)?(?:\*\*)?abstract\b`)
	referencesHead  = regexp.MustCompile(`(?im)^\s*(?:#+\s*)?(?:\*\*)?(?:references|bibliography)\b`)
	exerciseHeading = regexp.MustCompile(`(?im)^\s*(?:#+\s*)?(?:\*\*)?(?:exercise|exercice|ejercicio|übung)\s*\d*`)
	vocabHeading    = regexp.MustCompile(`(?im)^\s*(?:#+\s*)?(?:\*\*)?(?:vocabulary|vocabulaire|vocabulario|wortschatz)\b`)
)

var latexMarkers = []string{"\\begin{", "\\end{", "\\cite{", "\\ref{", "\\label{", "\\frac{"}

// Analyze scans final markdown text for academic and textbook signals.
func Analyze(text string) Signals {
	var s Signals
	s.detectAcademicSignals(text)
	s.detectTextbookSignals(text)
	s.SuggestedType = s.suggestType()
	return s
}

// detectAcademicSignals scans content for academic indicators
func (s *Signals) detectAcademicSignals(text string) {
	s.DOIs = unique(trimDOIs(doiPattern.FindAllString(text, -1)))

	var ids []string
	for _, m := range arxivPattern.FindAllStringSubmatch(text, -1) {
		ids = append(ids, m[1])
	}
	s.ArXivIDs = unique(ids)

	for _, marker := range latexMarkers {
		if strings.Contains(text, marker) {
			s.HasLaTeX = true
			break
		}
	}

	s.NumericCitations = len(numericCitation.FindAllString(text, -1))
	s.AuthorCitations = len(authorCitation.FindAllString(text, -1))
	s.HasAbstract = abstractHeading.MatchString(text)
	s.HasReferences = referencesHead.MatchString(text)

	score := 0.0
	if len(s.DOIs) > 0 {
		score += 3.0
	}
	if len(s.ArXivIDs) > 0 {
		score += 2.0
	}
	if s.HasLaTeX {
		score += 1.0
	}
	if s.NumericCitations+s.AuthorCitations >= 3 {
		score += 1.5
	}
	if s.HasReferences {
		score += 1.5
	}
	if s.HasAbstract {
		score += 1.0
	}
	s.AcademicScore = score
}

func (s *Signals) detectTextbookSignals(text string) {
	s.ExerciseCount = len(exerciseHeading.FindAllString(text, -1))
	s.VocabularyLists = len(vocabHeading.FindAllString(text, -1))

	score := float64(s.ExerciseCount)*1.5 + float64(s.VocabularyLists)*2.0
	if score > 10 {
		score = 10
	}
	s.TextbookScore = score
}

func (s *Signals) suggestType() models.DocumentType {
	switch {
	case s.AcademicScore >= 3 && s.AcademicScore >= s.TextbookScore:
		return models.DocumentTypeAcademicPaper
	case s.TextbookScore >= 3:
		return models.DocumentTypeLanguageTextbook
	default:
		return models.DocumentTypeGeneric
	}
}

// trimDOIs drops sentence punctuation the pattern swallows at the end.
func trimDOIs(dois []string) []string {
	for i, d := range dois {
		dois[i] = strings.TrimRight(d, ".,;)]")
	}
	return dois
}

func unique(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
