package pages

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func writeImages(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), pngBytes(t, 20, 10), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
}

func TestFromDir(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "scan_02.png", "scan_01.png", "scan_03.PNG")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	pages, err := FromDir(dir, Range{})
	if err != nil {
		t.Fatalf("FromDir() error = %v", err)
	}

	want := []string{"scan_01.png", "scan_02.png", "scan_03.PNG"}
	if got := Names(pages); !reflect.DeepEqual(got, want) {
		t.Errorf("FromDir() names = %v, want %v", got, want)
	}
	for i, p := range pages {
		if p.Number != i+1 {
			t.Errorf("page %d Number = %d", i, p.Number)
		}
		if p.MIMEType != "image/png" {
			t.Errorf("page %d MIMEType = %q, want image/png", i, p.MIMEType)
		}
	}
}

func TestFromDir_Range(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "a.png", "b.png", "c.png", "d.png")

	pages, err := FromDir(dir, Range{First: 2, Last: 3})
	if err != nil {
		t.Fatalf("FromDir() error = %v", err)
	}
	if got := Names(pages); !reflect.DeepEqual(got, []string{"b.png", "c.png"}) {
		t.Errorf("FromDir() names = %v, want [b.png c.png]", got)
	}
}

func TestFromDir_Empty(t *testing.T) {
	_, err := FromDir(t.TempDir(), Range{})
	if !errors.Is(err, ErrNoPages) {
		t.Errorf("FromDir() error = %v, want ErrNoPages", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "single.png")

	pages, err := Load(filepath.Join(dir, "single.png"), Range{})
	if err != nil {
		t.Fatalf("Load(image) error = %v", err)
	}
	if len(pages) != 1 || pages[0].Name != "single.png" {
		t.Errorf("Load(image) = %v, want one page", Names(pages))
	}

	if _, err := Load(filepath.Join(dir, "missing.pdf"), Range{}); err == nil {
		t.Error("Load(missing) error = nil, want error")
	}

	txt := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(txt, Range{}); err == nil {
		t.Error("Load(txt) error = nil, want unsupported input")
	}

	if _, err := Load(dir, Range{First: 3, Last: 1}); err == nil {
		t.Error("Load() with inverted range error = nil, want error")
	}
}

func TestBatches(t *testing.T) {
	pages := make([]Page, 7)
	for i := range pages {
		pages[i] = Page{Number: i + 1}
	}

	tests := []struct {
		size int
		want []int
	}{
		{3, []int{3, 3, 1}},
		{5, []int{5, 2}},
		{10, []int{7}},
		{0, []int{1, 1, 1, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		batches := Batches(pages, tt.size)
		got := make([]int, len(batches))
		for i, b := range batches {
			got[i] = len(b)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Batches(size=%d) sizes = %v, want %v", tt.size, got, tt.want)
		}
	}

	if Batches(nil, 3) != nil {
		t.Error("Batches(nil) should be nil")
	}
}

func TestNormalize(t *testing.T) {
	small := Page{Name: "small.png", Data: pngBytes(t, 100, 50), MIMEType: "image/png"}
	got, err := Normalize(small, MaxEdge(1))
	if err != nil {
		t.Fatalf("Normalize(small) error = %v", err)
	}
	if !bytes.Equal(got.Data, small.Data) {
		t.Error("Normalize(small) re-encoded a page that already fits")
	}

	large := Page{Name: "large.png", Data: pngBytes(t, 400, 200), MIMEType: "image/png"}
	got, err = Normalize(large, 100)
	if err != nil {
		t.Fatalf("Normalize(large) error = %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(got.Data))
	if err != nil {
		t.Fatalf("png.DecodeConfig() error = %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Errorf("Normalize(large) = %dx%d, want 100x50", cfg.Width, cfg.Height)
	}

	if _, err := Normalize(Page{Name: "bad.png", Data: []byte("nope")}, 100); err == nil {
		t.Error("Normalize(garbage) error = nil, want decode error")
	}
}

func TestMaxEdge(t *testing.T) {
	if got := MaxEdge(2.0); got != 2048 {
		t.Errorf("MaxEdge(2.0) = %d, want 2048", got)
	}
	if got := MaxEdge(0); got != 1024 {
		t.Errorf("MaxEdge(0) = %d, want 1024", got)
	}
}

func TestFromPDF_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := FromPDF(path, Range{}); err == nil {
		t.Error("FromPDF(broken) error = nil, want read error")
	}
	if _, err := FromPDF(path, Range{First: 2, Last: 1}); err == nil {
		t.Error("FromPDF() with inverted range error = nil, want error")
	}
}
