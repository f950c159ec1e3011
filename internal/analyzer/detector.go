// Package analyzer finds regions of interest on a page so the camera can
// zoom into them.
package analyzer

import "image"

// Block is a detected region of interest.
type Block struct {
	Rect       image.Rectangle
	Type       string  // "text", "header", "image", "unknown"
	Confidence float64 // 0.0-1.0
}

type Detector interface {
	Detect(img image.Image) ([]Block, error)
}

// Focus returns the largest block found by d, padded by a twentieth of the
// page size and clamped to the page.
func Focus(d Detector, img image.Image) (image.Rectangle, bool) {
	blocks, err := d.Detect(img)
	if err != nil || len(blocks) == 0 {
		return image.Rectangle{}, false
	}
	best := blocks[0]
	for _, b := range blocks[1:] {
		if area(b.Rect) > area(best.Rect) {
			best = b
		}
	}
	bounds := img.Bounds()
	pad := image.Pt(bounds.Dx()/20, bounds.Dy()/20)
	r := image.Rectangle{Min: best.Rect.Min.Sub(pad), Max: best.Rect.Max.Add(pad)}.Intersect(bounds)
	if r.Empty() {
		return image.Rectangle{}, false
	}
	return r, true
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}
