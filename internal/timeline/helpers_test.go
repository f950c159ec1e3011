package timeline

import (
	"errors"
	"os"
	"testing"

	"github.com/gogpu/gg"

	"github.com/ivlev/framekit/internal/render"
)

type stubContent struct {
	t   float64
	own *Settings
}

func (c *stubContent) Settings() *Settings { return c.own }

func (c *stubContent) Scene(s *Settings) (render.Scene, error) {
	return render.SceneFunc(func(dc *gg.Context) error { return nil }), nil
}

func stubFunc(t float64) (Content, error) {
	return &stubContent{t: t}, nil
}

var errBoom = errors.New("boom")

func failingFunc(t float64) (Content, error) {
	return nil, errBoom
}

// useTempDir points TempDir at a directory removed after the test.
func useTempDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	old := TempDir
	TempDir = func() (string, error) { return os.MkdirTemp(root, "framekit_") }
	t.Cleanup(func() { TempDir = old })
	return root
}

func newTimeline(t *testing.T, opts ...Option) *Timeline {
	t.Helper()
	useTempDir(t)
	tl, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tl
}

func mustSegment(t *testing.T, name string, n int, opts ...SegmentOption) *Segment {
	t.Helper()
	s, err := NewSegment(name, stubFunc, n, opts...)
	if err != nil {
		t.Fatalf("NewSegment(%q, %d): %v", name, n, err)
	}
	return s
}
