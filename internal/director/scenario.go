package director

import (
	"fmt"

	"github.com/ivlev/framekit/internal/camera"
	"github.com/ivlev/framekit/internal/content"
)

const ScriptVersion = "1.0"

// Script describes a timeline as an ordered list of segments.
type Script struct {
	Version   string        `yaml:"version"`
	FrameRate float64       `yaml:"frame_rate,omitempty"`
	Segments  []SegmentSpec `yaml:"segments"`
}

// SegmentSpec describes one segment. Frames, when set, takes precedence
// over Duration.
type SegmentSpec struct {
	Name     string          `yaml:"name"`
	Kind     string          `yaml:"kind"`
	Duration float64         `yaml:"duration,omitempty"` // seconds
	Frames   int             `yaml:"frames,omitempty"`
	ParamMin *float64        `yaml:"param_min,omitempty"`
	ParamMax *float64        `yaml:"param_max,omitempty"`
	Options  content.Options `yaml:"options,omitempty"`
	// Keyframes are camera moves of a pages segment by page index.
	Keyframes map[int][]camera.Keyframe `yaml:"keyframes,omitempty"`
}

// Validate checks the script without opening any content.
func (s *Script) Validate() error {
	if len(s.Segments) == 0 {
		return fmt.Errorf("script has no segments")
	}
	if s.FrameRate < 0 {
		return fmt.Errorf("frame_rate must not be negative, got %g", s.FrameRate)
	}
	for i, seg := range s.Segments {
		if seg.Frames <= 0 && seg.Duration <= 0 {
			return fmt.Errorf("segment %d (%s): duration or frames must be positive", i, seg.Name)
		}
		if seg.Frames < 0 {
			return fmt.Errorf("segment %d (%s): frames must not be negative", i, seg.Name)
		}
	}
	return nil
}
