package postprocess

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// builtinSpecial lists the structural lines that are never merged into a
// paragraph, whatever the profile says.
var builtinSpecial = mustCompile(
	`#+\s`,               // markdown headers
	`\*\*[A-Z]`,          // bold section headers
	`---+$`,              // horizontal rules
	`\|`,                 // table rows
	`\d+\.\s`,            // numbered lists
	`-\s`,                // bullets
	`\*\s`,               // bullets
	`[A-Z][A-Z\s]+:`,     // speaker labels (ANNE:, RECEPTIONIST:)
	`Exercise\s+\d+`,     // exercise headers
	`\*\*Exercise\s+\d+`, // bold exercise headers
	`Example:`,
	`\*\*.*\*\*$`, // fully bold lines
	`Figure\s+\d+`,
	`Table\s+\d+`,
	`Abstract\s*$`,
	`References\s*$`,
)

var (
	sentenceEnd  = regexp.MustCompile(`[.!?]\s*$`)
	sectionStart = regexp.MustCompile(`^(Abstract|Introduction|Methods|Results|Discussion|Conclusion|References|Figure|Table|Exercise)`)
)

// mergeAction is the outcome of comparing a line with the paragraph's last
// line.
type mergeAction int

const (
	// noMerge starts a new paragraph with the current line.
	noMerge mergeAction = iota
	// appendLine adds the line to the paragraph, joined with a space.
	appendLine
	// spliceLine replaces the paragraph's last line with Text, without an
	// inserted space.
	spliceLine
)

type mergeDecision struct {
	Action mergeAction
	Text   string // spliced text when Action is spliceLine
}

// ReconstructParagraphs merges soft-wrapped lines into paragraphs. Blank
// lines and special lines (profile section patterns or the built-in
// structural set) are paragraph boundaries and pass through untouched. It
// returns the rebuilt lines and the number of merges performed.
func ReconstructParagraphs(lines []string, sections Patterns) ([]string, int) {
	out := make([]string, 0, len(lines))
	var para []string
	merged := 0

	flush := func() {
		if len(para) > 0 {
			out = append(out, strings.Join(para, " "))
			para = para[:0]
		}
	}

	for _, raw := range lines {
		line := strings.TrimRightFunc(raw, unicode.IsSpace)

		if line == "" {
			flush()
			out = append(out, "")
			continue
		}

		if isSpecialLine(line, sections) {
			flush()
			out = append(out, line)
			continue
		}

		if len(para) == 0 {
			para = append(para, line)
			continue
		}

		last := para[len(para)-1]
		if endsSentence(last) {
			flush()
			para = append(para, line)
			continue
		}

		switch d := decideMerge(last, line); d.Action {
		case spliceLine:
			para[len(para)-1] = d.Text
			merged++
		case appendLine:
			para = append(para, line)
			merged++
		default:
			flush()
			para = append(para, line)
		}
	}
	flush()

	return out, merged
}

func isSpecialLine(line string, sections Patterns) bool {
	trimmed := strings.TrimSpace(line)
	return sections.index(trimmed) >= 0 || builtinSpecial.index(trimmed) >= 0
}

// endsSentence reports whether the right-trimmed line ends in terminal
// punctuation or a colon.
func endsSentence(line string) bool {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	return sentenceEnd.MatchString(line) || strings.HasSuffix(line, ":")
}

// decideMerge chooses how cur joins prev. Guards run in a fixed order:
// sentence end, capital after period, trailing hyphen, lowercase start and
// finally the section-keyword fallback.
func decideMerge(prev, cur string) mergeDecision {
	if !shouldMerge(prev, cur) {
		return mergeDecision{Action: noMerge}
	}
	if text, ok := repairSplitFormatting(prev, cur); ok {
		return mergeDecision{Action: spliceLine, Text: text}
	}
	prevR := strings.TrimRightFunc(prev, unicode.IsSpace)
	if strings.HasSuffix(prevR, "-") {
		return mergeDecision{Action: spliceLine, Text: joinHyphenated(prevR, cur)}
	}
	return mergeDecision{Action: appendLine}
}

func shouldMerge(prev, cur string) bool {
	prevR := strings.TrimRightFunc(prev, unicode.IsSpace)
	if endsSentence(prevR) {
		return false
	}
	if startsWithASCIIUpper(cur) && strings.HasSuffix(prevR, ".") {
		return false
	}
	if strings.HasSuffix(prevR, "-") {
		return true
	}
	if startsWithLower(cur) {
		return true
	}
	return !strings.ContainsAny(lastRune(prevR), ".!?:;") && !sectionStart.MatchString(cur)
}

// joinHyphenated splices a word broken across lines. A hyphen between two
// letters ("exam-" / "ple") is a line-break artifact and is dropped; any
// other trailing hyphen is kept ("well-" / "Known" gives "well-Known").
func joinHyphenated(prevR, cur string) string {
	stem := strings.TrimSuffix(prevR, "-")
	if r, _ := utf8.DecodeLastRuneInString(stem); unicode.IsLetter(r) && startsWithLower(cur) {
		return stem + cur
	}
	return prevR + cur
}

// repairSplitFormatting rejoins emphasis markup that recognition broke
// across two lines. It handles a marker pair split exactly at the line
// break ("foo **" / "**bar") and a span whose word was cut inside it
// ("Hello **wor" / "ld** there").
func repairSplitFormatting(prev, cur string) (string, bool) {
	prevR := strings.TrimRightFunc(prev, unicode.IsSpace)

	if strings.HasSuffix(prevR, "**") && strings.HasPrefix(cur, "**") {
		return prevR[:len(prevR)-2] + cur[2:], true
	}
	if strings.HasSuffix(prevR, "*") && strings.HasPrefix(cur, "*") && !strings.HasSuffix(prevR, " *") {
		return prevR[:len(prevR)-1] + cur[1:], true
	}

	return repairOpenSpan(prevR, cur)
}

// repairOpenSpan handles an emphasis span left open at the end of prevR and
// closed inside the first word of cur. Only a span holding a single cut
// token ("**wor") is spliced; a span that already contains a space wrapped
// at a word break and is left to the ordinary merge.
func repairOpenSpan(prevR, cur string) (string, bool) {
	if prevR == "" || !startsWithLower(cur) {
		return "", false
	}
	if r, _ := utf8.DecodeLastRuneInString(prevR); unicode.IsSpace(r) || r == '*' {
		return "", false
	}

	firstWord := cur
	if i := strings.IndexFunc(cur, unicode.IsSpace); i >= 0 {
		firstWord = cur[:i]
	}

	var span string
	single := func(s string) int { return strings.Count(strings.ReplaceAll(s, "**", ""), "*") }
	switch {
	case strings.Count(prevR, "**")%2 == 1 && strings.Contains(firstWord, "**"):
		span = prevR[strings.LastIndex(prevR, "**")+2:]
	case single(prevR)%2 == 1 && single(firstWord) > 0:
		span = prevR[lastSingleStar(prevR)+1:]
	default:
		return "", false
	}
	if span == "" || strings.ContainsFunc(span, unicode.IsSpace) {
		return "", false
	}
	return joinHyphenated(prevR, cur), true
}

// lastSingleStar returns the index of the last "*" that is not half of a
// "**" pair, or -1.
func lastSingleStar(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != '*' {
			continue
		}
		if i > 0 && s[i-1] == '*' {
			i--
			continue
		}
		return i
	}
	return -1
}

func startsWithLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r)
}

func startsWithASCIIUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

func lastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[len(s)-size:]
}
