// Package pages turns scanned documents into ordered page images ready for
// recognition.
package pages

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrNoPages = errors.New("no page images found")

// Page is one page image in document order.
type Page struct {
	Number   int    // 1-based page number within the source document
	Name     string // e.g. "page_003.png"
	Data     []byte
	MIMEType string
}

// Range selects pages by 1-based inclusive bounds. Zero means unbounded.
type Range struct {
	First int
	Last  int
}

func (r Range) validate() error {
	if r.First < 0 || r.Last < 0 {
		return fmt.Errorf("invalid page range %d-%d: pages are 1-based", r.First, r.Last)
	}
	if r.First > 0 && r.Last > 0 && r.First > r.Last {
		return fmt.Errorf("invalid page range: start page %d is after end page %d", r.First, r.Last)
	}
	return nil
}

// bounds clamps the range to a document of n pages.
func (r Range) bounds(n int) (int, int) {
	first, last := 1, n
	if r.First > 0 {
		first = r.First
	}
	if r.Last > 0 && r.Last < n {
		last = r.Last
	}
	return first, last
}

// contains reports whether page number n is inside the range.
func (r Range) contains(n int) bool {
	return (r.First == 0 || n >= r.First) && (r.Last == 0 || n <= r.Last)
}

// Load reads page images from a scanned PDF or a directory of images.
func Load(path string, r Range) ([]Page, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	if info.IsDir() {
		return FromDir(path, r)
	}
	if strings.EqualFold(extension(path), "pdf") {
		return FromPDF(path, r)
	}
	if mime, ok := imageMIME(path); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		return []Page{{Number: 1, Name: info.Name(), Data: data, MIMEType: mime}}, nil
	}
	return nil, fmt.Errorf("unsupported input %q: expected a PDF, an image or a directory of images", path)
}

// Batches splits pages into consecutive groups of at most size pages.
func Batches(pages []Page, size int) [][]Page {
	if size < 1 {
		size = 1
	}
	var out [][]Page
	for i := 0; i < len(pages); i += size {
		end := i + size
		if end > len(pages) {
			end = len(pages)
		}
		out = append(out, pages[i:end])
	}
	return out
}

// Names returns the page names of a batch.
func Names(pages []Page) []string {
	names := make([]string, len(pages))
	for i, p := range pages {
		names[i] = p.Name
	}
	return names
}
