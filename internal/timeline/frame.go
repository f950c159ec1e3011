package timeline

import (
	"fmt"

	"github.com/ivlev/framekit/internal/render"
)

// Content is what a frame function produces for one instant.
type Content interface {
	// Settings returns the content's own render settings. May be nil.
	Settings() *Settings
	// Scene returns the drawable for the content under the given
	// (already merged) settings.
	Scene(s *Settings) (render.Scene, error)
}

// FrameFunc maps a parameter value to frame content.
type FrameFunc func(t float64) (Content, error)

// Frame is a realized frame. Frames are built on every access and never
// cached.
type Frame struct {
	Index    int
	Time     float64
	Segment  string
	Content  Content
	Settings *Settings
	// FileName is empty for frames of a segment without a timeline.
	FileName string
}

// Scene returns the drawable for the frame.
func (f *Frame) Scene() (render.Scene, error) {
	if f.Content == nil {
		return nil, fmt.Errorf("frame %d has no content", f.Index)
	}
	return f.Content.Scene(f.Settings)
}

// Target describes where and how the backend should persist the frame.
func (f *Frame) Target(highQuality bool) render.Target {
	t := render.Target{
		Path:        f.FileName,
		Format:      f.Settings.String(KeyImageFormat),
		HighQuality: highQuality,
	}
	if res, ok := f.Settings.Resolution(KeyResolution); ok {
		t.Width, t.Height = res.Width, res.Height
	}
	return t
}

func (f *Frame) String() string {
	return fmt.Sprintf("frame %d (%s) t=%g", f.Index, f.Segment, f.Time)
}
