package postprocess

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternError reports a profile pattern that does not compile.
type PatternError struct {
	List    string // "header_patterns" or "section_patterns"
	Index   int
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid %s[%d] %q: %v", e.List, e.Index, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Patterns is an ordered list of compiled patterns. Order is declaration
// order and the first match wins.
type Patterns []*regexp.Regexp

// CompilePatterns compiles src in order. Each pattern is anchored at the
// start of the line, so it matches a prefix of the trimmed line rather than
// any substring.
func CompilePatterns(list string, src []string) (Patterns, error) {
	out := make(Patterns, 0, len(src))
	for i, p := range src {
		re, err := regexp.Compile(`^(?:` + p + `)`)
		if err != nil {
			return nil, &PatternError{List: list, Index: i, Pattern: p, Err: err}
		}
		out = append(out, re)
	}
	return out, nil
}

func mustCompile(src ...string) Patterns {
	ps, err := CompilePatterns("builtin", src)
	if err != nil {
		panic(err)
	}
	return ps
}

// Match reports whether the trimmed line matches any pattern.
func (ps Patterns) Match(line string) bool {
	return ps.index(strings.TrimSpace(line)) >= 0
}

// index returns the position of the first matching pattern, or -1.
func (ps Patterns) index(trimmed string) int {
	for i, re := range ps {
		if re.MatchString(trimmed) {
			return i
		}
	}
	return -1
}
