package pages

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// FromPDF extracts the page images of a scanned PDF. Each page contributes
// its largest embedded image; pages without images are skipped with a
// warning. Pages are not rendered, so PDFs with vector text and no scan
// images yield ErrNoPages.
func FromPDF(path string, r Range) ([]Page, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	first, last := r.bounds(ctx.PageCount)
	if first > ctx.PageCount {
		return nil, fmt.Errorf("start page %d is beyond the document's %d pages", first, ctx.PageCount)
	}

	var pages []Page
	for pageNr := first; pageNr <= last; pageNr++ {
		page, ok, err := largestImage(ctx, pageNr)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNr, err)
		}
		if !ok {
			slog.Warn("page has no embedded image, skipping", "input_path", path, "page", pageNr)
			continue
		}
		pages = append(pages, page)
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPages, path)
	}
	return pages, nil
}

func largestImage(ctx *model.Context, pageNr int) (Page, bool, error) {
	images, err := pdfcpu.ExtractPageImages(ctx, pageNr, false)
	if err != nil {
		return Page{}, false, err
	}

	objNrs := make([]int, 0, len(images))
	for objNr := range images {
		objNrs = append(objNrs, objNr)
	}
	sort.Ints(objNrs)

	var best *model.Image
	for _, objNr := range objNrs {
		img := images[objNr]
		if img.Reader == nil {
			continue
		}
		if best == nil || img.Width*img.Height > best.Width*best.Height {
			best = &img
		}
	}
	if best == nil {
		return Page{}, false, nil
	}

	data, err := io.ReadAll(best)
	if err != nil {
		return Page{}, false, fmt.Errorf("failed to read image: %w", err)
	}

	ext := best.FileType
	if ext == "" {
		ext = "png"
	}
	mime, ok := imageTypes[ext]
	if !ok {
		// jp2 and other exotic scans are re-encoded by Normalize when it can
		// decode them; otherwise the recognizer gets the raw bytes.
		mime = "application/octet-stream"
	}

	return Page{
		Number:   pageNr,
		Name:     fmt.Sprintf("page_%03d.%s", pageNr, ext),
		Data:     data,
		MIMEType: mime,
	}, true, nil
}
