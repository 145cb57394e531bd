package pages

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var imageTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"webp": "image/webp",
	"bmp":  "image/bmp",
}

func extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func imageMIME(path string) (string, bool) {
	mime, ok := imageTypes[extension(path)]
	return mime, ok
}

// FromDir reads every supported image in dir, sorted by file name. Page
// numbers follow that order.
func FromDir(dir string, r Range) ([]Page, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := imageMIME(e.Name()); ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var pages []Page
	for i, name := range names {
		num := i + 1
		if !r.contains(num) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		mime, _ := imageMIME(name)
		pages = append(pages, Page{Number: num, Name: name, Data: data, MIMEType: mime})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPages, dir)
	}
	return pages, nil
}
