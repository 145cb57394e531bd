// Package outline extracts the heading structure of a markdown document.
package outline

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Heading is one markdown heading in document order.
type Heading struct {
	Level int    `yaml:"level" json:"level"`
	Text  string `yaml:"text" json:"text"`
	Line  int    `yaml:"line" json:"line"` // 1-based
}

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Extract parses markdown and returns its headings, ATX and setext alike.
func Extract(source string) []Heading {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		title := strings.TrimSpace(inlineText(h, src))
		if title != "" {
			headings = append(headings, Heading{
				Level: h.Level,
				Text:  title,
				Line:  lineOf(h, src),
			})
		}
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// inlineText concatenates the literal text under n, dropping emphasis and
// link markup.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.CodeSpan:
			buf.WriteString(inlineText(t, src))
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}

func lineOf(h *ast.Heading, src []byte) int {
	lines := h.Lines()
	if lines.Len() == 0 {
		return 0
	}
	return bytes.Count(src[:lines.At(0).Start], []byte("\n")) + 1
}

// Render formats headings as an indented plain-text outline.
func Render(headings []Heading) string {
	var sb strings.Builder
	for _, h := range headings {
		sb.WriteString(strings.Repeat("  ", max(h.Level-1, 0)))
		sb.WriteString("- ")
		sb.WriteString(h.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
