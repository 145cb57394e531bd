package pages

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// BaseEdge is the long-edge pixel cap at image scale 1.0.
const BaseEdge = 1024

// MaxEdge returns the long-edge cap for a profile image scale.
func MaxEdge(scale float64) int {
	if scale <= 0 {
		scale = 1
	}
	return int(BaseEdge * scale)
}

// Normalize prepares a page for a vision model. PNG and JPEG pages within
// maxEdge are returned unchanged. Anything larger is downscaled with
// Catmull-Rom, and other formats are re-encoded, both as PNG.
func Normalize(p Page, maxEdge int) (Page, error) {
	img, format, err := image.Decode(bytes.NewReader(p.Data))
	if err != nil {
		return p, fmt.Errorf("failed to decode %s: %w", p.Name, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	long := w
	if h > long {
		long = h
	}

	fits := maxEdge <= 0 || long <= maxEdge
	if fits && (format == "png" || format == "jpeg") {
		return p, nil
	}

	var out image.Image = img
	if !fits {
		scale := float64(maxEdge) / float64(long)
		nw, nh := max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return p, fmt.Errorf("failed to encode %s: %w", p.Name, err)
	}

	p.Data = buf.Bytes()
	p.MIMEType = "image/png"
	return p, nil
}
