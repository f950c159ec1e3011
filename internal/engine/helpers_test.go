package engine

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/gogpu/gg"

	"github.com/ivlev/framekit/internal/render"
	"github.com/ivlev/framekit/internal/timeline"
)

var (
	errScene = errors.New("scene failed")
	errSave  = errors.New("save failed")
)

type testContent struct {
	fail bool
}

func (c *testContent) Settings() *timeline.Settings { return nil }

func (c *testContent) Scene(s *timeline.Settings) (render.Scene, error) {
	if c.fail {
		return nil, errScene
	}
	return render.SceneFunc(func(dc *gg.Context) error { return nil }), nil
}

// failAt returns a frame function whose content fails to build a scene
// when the parameter equals bad.
func failAt(bad float64) timeline.FrameFunc {
	return func(t float64) (timeline.Content, error) {
		return &testContent{fail: t == bad}, nil
	}
}

func okFunc(t float64) (timeline.Content, error) {
	return &testContent{}, nil
}

// recordingBackend records saved targets and never touches the disk.
type recordingBackend struct {
	mu      sync.Mutex
	saved   []render.Target
	shown   []render.Target
	failOn  string
	panicOn string
}

func (b *recordingBackend) Save(scene render.Scene, t render.Target) error {
	if b.panicOn != "" && t.Path == b.panicOn {
		panic("backend exploded")
	}
	if b.failOn != "" && t.Path == b.failOn {
		return errSave
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saved = append(b.saved, t)
	return nil
}

func (b *recordingBackend) Show(scene render.Scene, t render.Target) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shown = append(b.shown, t)
	return nil
}

func (b *recordingBackend) savedPaths() map[string]bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]bool, len(b.saved))
	for _, t := range b.saved {
		out[t.Path] = true
	}
	return out
}

func useTempDir(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	old := timeline.TempDir
	timeline.TempDir = func() (string, error) { return os.MkdirTemp(root, "framekit_") }
	t.Cleanup(func() { timeline.TempDir = old })
}

// tenFrames returns a timeline with one 10 frame segment "A" whose
// parameter equals the frame number. Frame 5 fails.
func tenFrames(t *testing.T) *timeline.Timeline {
	t.Helper()
	useTempDir(t)
	tl, err := timeline.New()
	if err != nil {
		t.Fatal(err)
	}
	seg, err := timeline.NewSegment("A", failAt(5), 10, timeline.WithParamRange(0, 10))
	if err != nil {
		t.Fatal(err)
	}
	tl.AppendSegment(seg)
	return tl
}
