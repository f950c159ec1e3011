package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/framekit/internal/system"
)

const (
	DefaultWidth       = 544
	DefaultHeight      = 306
	DefaultJPEGQuality = 90

	// supersample is the scale factor used for high quality output.
	supersample = 2
)

// GGBackend rasterizes scenes with the gg software renderer and writes PNG
// or JPEG files.
type GGBackend struct {
	JPEGQuality int
	// Display receives inline images from Show. When nil, Show writes to
	// stdout if it is an iTerm2 terminal and to a preview file otherwise.
	Display io.Writer
}

func NewGGBackend() *GGBackend {
	return &GGBackend{JPEGQuality: DefaultJPEGQuality}
}

// Rasterize draws scene at the target size. High quality targets are drawn
// at twice the size and downsampled with a Catmull-Rom filter. The returned
// release function hands pooled buffers back and must be called once the
// image is no longer used.
func (b *GGBackend) Rasterize(scene Scene, t Target) (image.Image, func(), error) {
	if scene == nil {
		return nil, nil, fmt.Errorf("nil scene")
	}
	w, h := t.Width, t.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultWidth, DefaultHeight
	}
	scale := 1
	if t.HighQuality {
		scale = supersample
	}

	// Scenes draw relative to dc.Width() and dc.Height().
	dc := gg.NewContext(w*scale, h*scale)
	defer dc.Close()
	if err := scene.Draw(dc); err != nil {
		return nil, nil, fmt.Errorf("draw scene: %w", err)
	}
	if err := dc.FlushGPU(); err != nil {
		system.Logger().Warn("flush gpu", "err", err)
	}
	img := dc.Image()
	if scale == 1 {
		return img, func() {}, nil
	}

	dst := system.GetImage(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst, func() { system.PutImage(dst) }, nil
}

// Save rasterizes scene and writes it to t.Path, creating the parent
// directory when needed.
func (b *GGBackend) Save(scene Scene, t Target) error {
	format := t.Format
	if format == "" {
		format = filepath.Ext(t.Path)
	}
	if !supportedFormat(format) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	img, release, err := b.Rasterize(scene, t)
	if err != nil {
		return err
	}
	defer release()

	if err := os.MkdirAll(filepath.Dir(t.Path), 0755); err != nil {
		return err
	}
	f, err := os.Create(t.Path)
	if err != nil {
		return err
	}
	if err := b.encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", t.Path, err)
	}
	return f.Close()
}

// Show displays scene without saving it to its target path.
func (b *GGBackend) Show(scene Scene, t Target) error {
	img, release, err := b.Rasterize(scene, t)
	if err != nil {
		return err
	}
	defer release()

	if b.Display != nil {
		return WriteInlineImage(b.Display, img)
	}
	if InlineCapable(os.Stdout) {
		return WriteInlineImage(os.Stdout, img)
	}

	f, err := os.CreateTemp("", "framekit_preview_*.png")
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	fmt.Printf("[*] Preview: %s\n", f.Name())
	return f.Close()
}

func (b *GGBackend) encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		q := b.JPEGQuality
		if q <= 0 || q > 100 {
			q = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func supportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
