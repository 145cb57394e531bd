package recognizer

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const hocrLineSelector = ".ocr_line, .ocr_header, .ocr_caption, .ocr_textfloat"

// ParseHOCR flattens an hOCR document to plain text. Lines keep their
// breaks and paragraphs are separated by a blank line, which is the shape
// the post-processing pipeline expects from a vision model.
func ParseHOCR(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse hOCR: %w", err)
	}

	var paragraphs []string
	pars := doc.Find(".ocr_par")
	if pars.Length() == 0 {
		// Some engines emit lines without paragraph wrappers.
		if text := hocrLines(doc.Selection); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	pars.Each(func(i int, par *goquery.Selection) {
		if text := hocrLines(par); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return strings.Join(paragraphs, "\n\n"), nil
}

func hocrLines(s *goquery.Selection) string {
	var lines []string
	s.Find(hocrLineSelector).Each(func(i int, line *goquery.Selection) {
		var words []string
		line.Find(".ocrx_word").Each(func(j int, w *goquery.Selection) {
			if word := strings.TrimSpace(w.Text()); word != "" {
				words = append(words, word)
			}
		})
		if len(words) == 0 {
			words = strings.Fields(line.Text())
		}
		if len(words) > 0 {
			lines = append(lines, strings.Join(words, " "))
		}
	})
	return strings.Join(lines, "\n")
}
