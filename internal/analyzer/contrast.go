package analyzer

import (
	"image"
	"image/draw"
	"math"
)

// ContrastDetector marks pixels with a strong Sobel gradient, grows them
// into blobs and reports the bounding boxes of the blobs.
type ContrastDetector struct {
	MinBlockArea  int     // in pixels
	EdgeThreshold float64 // gradient magnitude
	Dilation      int     // radius in pixels
}

func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinBlockArea:  500,
		EdgeThreshold: 30.0,
		Dilation:      4,
	}
}

func (d *ContrastDetector) Detect(img image.Image) ([]Block, error) {
	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)

	mask := d.edges(gray)
	mask = grow(mask, gray.Rect.Dx(), gray.Rect.Dy(), d.Dilation)

	var blocks []Block
	for _, r := range components(mask, gray.Rect) {
		if area(r) < d.MinBlockArea {
			continue
		}
		blocks = append(blocks, Block{Rect: r, Type: "unknown", Confidence: 0.7})
	}
	return blocks, nil
}

// edges returns a row-major mask of pixels whose gradient exceeds the
// threshold.
func (d *ContrastDetector) edges(g *image.Gray) []bool {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	mask := make([]bool, w*h)
	at := func(x, y int) float64 { return float64(g.Pix[y*g.Stride+x]) }
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
			gy := at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)
			mask[y*w+x] = math.Hypot(gx, gy) > d.EdgeThreshold
		}
	}
	return mask
}

// grow dilates mask by r with a square kernel, one axis at a time.
func grow(mask []bool, w, h, r int) []bool {
	if r <= 0 {
		return mask
	}
	tmp := make([]bool, len(mask))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask[y*w+x] {
				continue
			}
			for k := max(0, x-r); k <= min(w-1, x+r); k++ {
				tmp[y*w+k] = true
			}
		}
	}
	out := make([]bool, len(mask))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !tmp[y*w+x] {
				continue
			}
			for k := max(0, y-r); k <= min(h-1, y+r); k++ {
				out[k*w+x] = true
			}
		}
	}
	return out
}

// components returns the bounding boxes of the 4-connected regions of mask
// in the coordinates of bounds.
func components(mask []bool, bounds image.Rectangle) []image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	seen := make([]bool, len(mask))
	var rects []image.Rectangle
	var stack []int
	for i, on := range mask {
		if !on || seen[i] {
			continue
		}
		r := image.Rect(i%w, i/w, i%w+1, i/w+1)
		seen[i] = true
		stack = append(stack[:0], i)
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := p%w, p/w
			r = r.Union(image.Rect(x, y, x+1, y+1))
			for _, n := range [4][2]int{{x + 1, y}, {x - 1, y}, {x, y + 1}, {x, y - 1}} {
				if n[0] < 0 || n[0] >= w || n[1] < 0 || n[1] >= h {
					continue
				}
				j := n[1]*w + n[0]
				if mask[j] && !seen[j] {
					seen[j] = true
					stack = append(stack, j)
				}
			}
		}
		rects = append(rects, r.Add(bounds.Min))
	}
	return rects
}
