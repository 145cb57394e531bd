package recognizer

import (
	"regexp"
	"strings"
	"sync"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var (
	fencedResponse = regexp.MustCompile("(?s)^```[A-Za-z]*[ \t]*\n(.*?)\n?```$")
	htmlTable      = regexp.MustCompile(`(?is)<table\b.*?</table>`)
)

type cleaner struct {
	md     *converter.Converter
	policy *bluemonday.Policy
}

var defaultCleaner = sync.OnceValue(func() *cleaner {
	return &cleaner{
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		policy: bluemonday.UGCPolicy(),
	}
})

// Clean tidies raw model output before post-processing: it applies NFC
// normalization, unifies line endings, unwraps a response fenced as a
// single code block and rewrites HTML tables as markdown tables.
func Clean(text string) string {
	return defaultCleaner().clean(text)
}

func (c *cleaner) clean(text string) string {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)

	if m := fencedResponse.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	return htmlTable.ReplaceAllStringFunc(text, func(fragment string) string {
		md, err := c.md.ConvertString(c.policy.Sanitize(fragment))
		if err != nil {
			return fragment
		}
		return "\n" + strings.TrimSpace(md) + "\n"
	})
}

// Combine joins the non-empty batch texts of a document with a blank line,
// in batch order.
func Combine(texts []string) string {
	kept := make([]string, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, "\n\n")
}
