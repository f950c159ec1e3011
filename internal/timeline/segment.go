package timeline

import (
	"errors"
	"fmt"
	"iter"
)

// Segment produces a continuous run of frames from a single frame function
// over the parameter interval [ParamMin, ParamMax].
//
// A Segment carries no render configuration. Frames of a detached segment
// keep the content's own settings and have no file name; once a Timeline
// appends a copy of the segment, that copy picks up the timeline's settings
// and sequential file names.
type Segment struct {
	FrameRange

	name     string
	fn       FrameFunc
	paramMin float64
	paramMax float64

	timeline *Timeline
}

// SegmentOption configures a Segment at construction.
type SegmentOption func(*Segment)

// WithParamRange sets the parameter interval. min and max may be given in
// either order.
func WithParamRange(min, max float64) SegmentOption {
	return func(s *Segment) {
		s.paramMin = min
		s.paramMax = max
	}
}

// WithFirstFrame sets the first frame number. Appending the segment to a
// timeline discards it.
func WithFirstFrame(n int) SegmentOption {
	return func(s *Segment) {
		s.first = n
	}
}

// NewSegment creates a detached segment of numFrames frames.
func NewSegment(name string, fn FrameFunc, numFrames int, opts ...SegmentOption) (*Segment, error) {
	if numFrames <= 0 {
		return nil, fmt.Errorf("segment %q: %w (got %d)", name, ErrInvalidCount, numFrames)
	}
	if fn == nil {
		return nil, fmt.Errorf("segment %q: no frame function", name)
	}
	s := &Segment{
		name:     name,
		fn:       fn,
		paramMin: 0,
		paramMax: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.last = s.first + numFrames - 1
	return s, nil
}

func (s *Segment) Name() string { return s.name }

func (s *Segment) SetName(v string) { s.name = v }

func (s *Segment) ParamMin() float64 { return s.paramMin }

func (s *Segment) SetParamMin(v float64) { s.paramMin = v }

func (s *Segment) ParamMax() float64 { return s.paramMax }

func (s *Segment) SetParamMax(v float64) { s.paramMax = v }

// FrameFunc returns the segment's frame function.
func (s *Segment) FrameFunc() FrameFunc { return s.fn }

// Timeline returns the owning timeline, or nil when detached.
func (s *Segment) Timeline() *Timeline { return s.timeline }

// AsSegment exposes the segment to composition. Types embedding *Segment
// can be appended to a timeline through it.
func (s *Segment) AsSegment() *Segment { return s }

// Copy returns a shallow copy that keeps the owning timeline reference.
func (s *Segment) Copy() *Segment {
	c := *s
	return &c
}

func (s *Segment) String() string {
	return fmt.Sprintf("Animation segment: %s;  %d frames. [%d -- %d]",
		s.name, s.NumFrames(), s.first, s.last)
}

// ParamAt returns the parameter value of frame n without range checks.
//
// The map is affine with the right endpoint excluded: the first frame maps
// to ParamMin and the last frame to ParamMin + (N-1)/N of the span.
func (s *Segment) ParamAt(n int) float64 {
	return s.paramMin + float64(n-s.first)*(s.paramMax-s.paramMin)/float64(s.NumFrames())
}

// Realize builds frame n.
func (s *Segment) Realize(n int) (*Frame, error) {
	if err := s.CheckFrame(n); err != nil {
		return nil, fmt.Errorf("segment %q: %w", s.name, err)
	}
	t := s.ParamAt(n)
	content, err := s.fn(t)
	if err != nil {
		return nil, fmt.Errorf("segment %q frame %d: %w", s.name, n, err)
	}
	f := &Frame{
		Index:   n,
		Time:    t,
		Segment: s.name,
		Content: content,
	}
	if content != nil {
		f.Settings = content.Settings().Clone()
	} else {
		f.Settings = NewSettings()
	}
	if s.timeline != nil {
		f.Settings.Update(s.timeline.settings)
		f.FileName = s.timeline.FrameFileName(n)
		f.Settings.Set(KeyFileName, f.FileName)
	}
	return f, nil
}

// Frames returns a lazy sequence over every step-th frame. Each call of the
// returned sequence starts over.
func (s *Segment) Frames(step int) iter.Seq2[*Frame, error] {
	return func(yield func(*Frame, error) bool) {
		if step < 1 {
			yield(nil, fmt.Errorf("segment %q: %w (got %d)", s.name, ErrInvalidStep, step))
			return
		}
		for n := s.first; n <= s.last; n += step {
			if !yield(s.Realize(n)) {
				return
			}
		}
	}
}

// WrapWithTimeline returns a new Timeline holding a copy of the segment.
// settings, when non-nil, update the timeline's general settings.
func (s *Segment) WrapWithTimeline(settings *Settings) (*Timeline, error) {
	return Wrap(s.Copy(), settings)
}

// Add returns a fresh timeline holding a copy of s followed by a copy of
// other. The operation is neither commutative nor associative.
func (s *Segment) Add(other any) (*Timeline, error) {
	tl, err := s.WrapWithTimeline(nil)
	if err != nil {
		return nil, err
	}
	return tl.Add(other)
}

// segmentOf extracts the segment behind a composition operand.
func segmentOf(v any) (*Segment, error) {
	sv, ok := v.(interface{ AsSegment() *Segment })
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotASegment, v)
	}
	seg := sv.AsSegment()
	if seg == nil {
		return nil, fmt.Errorf("%w: nil segment", ErrNotASegment)
	}
	return seg, nil
}

// IsOutOfRange reports whether err is an ErrOutOfRange error.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}
