package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.Black)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestImageSourceDirectory(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "page2.png"), 20, 10)
	writePNG(t, filepath.Join(dir, "page1.png"), 10, 10)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}

	src, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	if n := src.PageCount(); n != 2 {
		t.Fatalf("PageCount = %d, want 2", n)
	}
	for i, wantWidth := range []int{10, 20} {
		img, err := src.RenderPage(i, 150)
		if err != nil {
			t.Fatalf("RenderPage(%d): %v", i, err)
		}
		if got := img.Bounds().Dx(); got != wantWidth {
			t.Errorf("page %d width = %d, want %d", i, got, wantWidth)
		}
	}

	for _, index := range []int{-1, 2} {
		if _, err := src.RenderPage(index, 150); err == nil || !strings.Contains(err.Error(), "out of range") {
			t.Errorf("RenderPage(%d) err = %v, want out of range", index, err)
		}
	}
}

func TestImageSourceSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slide.png")
	writePNG(t, path, 4, 3)

	src, err := NewImageSource(path)
	if err != nil {
		t.Fatalf("NewImageSource: %v", err)
	}
	if n := src.PageCount(); n != 1 {
		t.Errorf("PageCount = %d, want 1", n)
	}
}

func TestImageSourceErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewImageSource(dir); err == nil || !strings.Contains(err.Error(), "no images") {
		t.Errorf("empty dir err = %v", err)
	}
	if _, err := NewImageSource(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing path")
	}

	bad := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(bad, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	src, err := NewImageSource(dir)
	if err != nil {
		t.Fatalf("NewImageSource: %v", err)
	}
	if _, err := src.RenderPage(0, 150); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("RenderPage err = %v, want decode error", err)
	}
}
