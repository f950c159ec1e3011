package content

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"sync"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/framekit/internal/analyzer"
	"github.com/ivlev/framekit/internal/camera"
	"github.com/ivlev/framekit/internal/source"
	"github.com/ivlev/framekit/internal/system"
	"github.com/ivlev/framekit/internal/timeline"
)

const (
	DefaultDPI       = 150
	DefaultPeakZoom  = 1.5
	defaultCacheSize = 4
)

// Pages shows the pages of a document one after another. The parameter
// range [0, 1) is split evenly between pages and each page runs its camera
// keyframes over its share.
type Pages struct {
	Source source.Source
	DPI    int
	// Zoom is the ZoomIn mode used for pages without explicit keyframes:
	// none, center, top-left, top-right, bottom-left, bottom-right, random
	// or auto. Random picks a fixed corner or the center per page. Auto
	// zooms into the largest block found by Detector.
	Zoom     string
	Peak     float64
	Ease     func(float64) float64
	Detector analyzer.Detector
	// Keyframes holds explicit camera keyframes by page index.
	Keyframes map[int][]camera.Keyframe

	cache *pageCache
	auto  sync.Map // page index -> []camera.Keyframe
}

// NewPages opens the document named by the source option and reads dpi,
// zoom, peak and ease.
func NewPages(opts Options) (*Pages, error) {
	path := opts.String("source", "")
	if path == "" {
		return nil, fmt.Errorf("pages: source option is required")
	}
	dpi, err := opts.Int("dpi", DefaultDPI)
	if err != nil {
		return nil, err
	}
	peak, err := opts.Float("peak", DefaultPeakZoom)
	if err != nil {
		return nil, err
	}
	fn, err := Easing(opts.String("ease", "in-out-cubic"))
	if err != nil {
		return nil, err
	}
	src, err := source.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pages: open %s: %w", path, err)
	}
	return NewPagesFrom(src, dpi, opts.String("zoom", "none"), peak, fn), nil
}

// NewPagesFrom wraps an open source.
func NewPagesFrom(src source.Source, dpi int, zoom string, peak float64, easing func(float64) float64) *Pages {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Pages{
		Source:    src,
		DPI:       dpi,
		Zoom:      zoom,
		Peak:      peak,
		Ease:      easing,
		Detector:  analyzer.NewContrastDetector(),
		Keyframes: make(map[int][]camera.Keyframe),
		cache:     newPageCache(defaultCacheSize),
	}
}

// Locate maps parameter t to a page index and the local time on that page.
func (p *Pages) Locate(t float64) (int, float64) {
	n := p.Source.PageCount()
	if n <= 0 {
		return 0, 0
	}
	pos := clamp01(t) * float64(n)
	page := int(pos)
	if page >= n {
		page = n - 1
	}
	return page, clamp01(pos - float64(page))
}

func (p *Pages) Frame(t float64) (timeline.Content, error) {
	if p.Source.PageCount() == 0 {
		return nil, fmt.Errorf("pages: document has no pages")
	}
	page, local := p.Locate(t)
	own := timeline.SettingsOf("page", page)
	return &Drawing{
		Own: own,
		Draw: func(dc *gg.Context, _ *timeline.Settings) error {
			return p.draw(dc, page, local)
		},
	}, nil
}

func (p *Pages) page(index int) (image.Image, error) {
	if p.cache == nil {
		return p.Source.RenderPage(index, p.DPI)
	}
	if img, ok := p.cache.get(index); ok {
		return img, nil
	}
	img, err := p.Source.RenderPage(index, p.DPI)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", index, err)
	}
	p.cache.put(index, img)
	return img, nil
}

func (p *Pages) keyframes(index int, img image.Image) []camera.Keyframe {
	if kfs, ok := p.Keyframes[index]; ok && len(kfs) > 0 {
		return camera.Sorted(kfs)
	}
	bounds := img.Bounds()
	switch p.Zoom {
	case "", "none":
		return nil
	case "auto":
		if kfs, ok := p.auto.Load(index); ok {
			return kfs.([]camera.Keyframe)
		}
		kfs := p.autoKeyframes(bounds, img)
		p.auto.Store(index, kfs)
		return kfs
	case "random":
		return camera.ZoomIn(bounds, randomZoomMode(index), p.Peak)
	default:
		return camera.ZoomIn(bounds, p.Zoom, p.Peak)
	}
}

var zoomModes = []string{"center", "top-left", "top-right", "bottom-left", "bottom-right"}

// randomZoomMode is seeded by the page index so every frame of a page
// zooms the same way.
func randomZoomMode(index int) string {
	r := rand.New(rand.NewSource(int64(index*99 + 1)))
	return zoomModes[r.Intn(len(zoomModes))]
}

func (p *Pages) autoKeyframes(bounds image.Rectangle, img image.Image) []camera.Keyframe {
	if p.Detector == nil {
		return nil
	}
	focus, ok := analyzer.Focus(p.Detector, img)
	if !ok {
		return nil
	}
	zoom := float64(bounds.Dx()) / float64(focus.Dx())
	if zy := float64(bounds.Dy()) / float64(focus.Dy()); zy < zoom {
		zoom = zy
	}
	if zoom > p.Peak {
		zoom = p.Peak
	}
	full := camera.Rectangle{X: bounds.Min.X, Y: bounds.Min.Y, W: bounds.Dx(), H: bounds.Dy()}
	target := camera.Rectangle{X: focus.Min.X, Y: focus.Min.Y, W: focus.Dx(), H: focus.Dy()}
	return []camera.Keyframe{
		{Time: 0, Focus: "full_view", Rect: full, Zoom: 1},
		{Time: 1, Focus: "auto", Rect: target, Zoom: zoom},
	}
}

func (p *Pages) draw(dc *gg.Context, index int, local float64) error {
	img, err := p.page(index)
	if err != nil {
		return err
	}
	bounds := img.Bounds()
	state := camera.Still(bounds)
	if kfs := p.keyframes(index, img); len(kfs) > 0 {
		state = camera.Interpolate(kfs, local, p.Ease)
	}
	view := camera.Viewport(bounds, state)

	out := system.GetImage(image.Rect(0, 0, dc.Width(), dc.Height()))
	defer system.PutImage(out)
	draw.Draw(out, out.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	xdraw.BiLinear.Scale(out, fit(out.Bounds(), view), img, view, xdraw.Src, nil)

	dc.DrawImage(gg.ImageBufFromImage(out), 0, 0)
	return nil
}

func (p *Pages) Close() error {
	return p.Source.Close()
}

// fit returns the largest rectangle with the aspect ratio of src centered
// in dst.
func fit(dst, src image.Rectangle) image.Rectangle {
	dw, dh := dst.Dx(), dst.Dy()
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 {
		return dst
	}
	w, h := dw, dw*sh/sw
	if h > dh {
		w, h = dh*sw/sh, dh
	}
	x := dst.Min.X + (dw-w)/2
	y := dst.Min.Y + (dh-h)/2
	return image.Rect(x, y, x+w, y+h)
}

type pageCache struct {
	mu    sync.Mutex
	size  int
	order []int
	pages map[int]image.Image
}

func newPageCache(size int) *pageCache {
	return &pageCache{size: size, pages: make(map[int]image.Image)}
}

func (c *pageCache) get(index int) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	img, ok := c.pages[index]
	return img, ok
}

func (c *pageCache) put(index int, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pages[index]; ok {
		return
	}
	if len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.pages, oldest)
	}
	c.order = append(c.order, index)
	c.pages[index] = img
}
