package timeline

import (
	"fmt"
	"iter"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/framekit/internal/system"
)

const (
	DefaultFrameRate   = 30.0
	DefaultImageFormat = ".png"
	DefaultFrameName   = "animation-frame"

	// FrameNumberWidth is the zero padding of frame numbers in file names.
	FrameNumberWidth = 5
)

// DefaultResolution is the pixel size of new timelines.
var DefaultResolution = Resolution{Width: 544, Height: 306}

// TempDir creates a fresh output directory. Replaced in tests.
var TempDir = func() (string, error) {
	return os.MkdirTemp("", "framekit_")
}

// SegmentFactory builds the segments created by Timeline.AddSegment.
type SegmentFactory func(name string, fn FrameFunc, numFrames int, opts ...SegmentOption) (*Segment, error)

// Timeline is an ordered composition of segments renumbered into one
// contiguous frame sequence. It holds the render settings shared by every
// segment it owns.
type Timeline struct {
	FrameRange

	settings    *Settings
	segments    []*Segment
	frameRate   float64
	factory     SegmentFactory
	highQuality bool
	workers     int
}

// Option configures a Timeline at construction.
type Option func(*Timeline) error

func WithFrameRate(fps float64) Option {
	return func(t *Timeline) error { return t.SetFrameRate(fps) }
}

// WithOutDir uses dir instead of a temporary output directory.
func WithOutDir(dir string) Option {
	return func(t *Timeline) error {
		t.SetOutDir(dir)
		return nil
	}
}

// WithSettings updates the general frame settings.
func WithSettings(s *Settings) Option {
	return func(t *Timeline) error {
		t.settings.Update(s)
		return nil
	}
}

func WithSegmentFactory(f SegmentFactory) Option {
	return func(t *Timeline) error {
		t.SetSegmentFactory(f)
		return nil
	}
}

func WithWorkers(n int) Option {
	return func(t *Timeline) error {
		t.SetWorkers(n)
		return nil
	}
}

func WithHighQuality(v bool) Option {
	return func(t *Timeline) error {
		t.SetHighQuality(v)
		return nil
	}
}

// New creates an empty timeline rendering into a fresh temporary directory.
func New(opts ...Option) (*Timeline, error) {
	dir, err := TempDir()
	if err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	t := &Timeline{
		FrameRange: emptyRange(0),
		settings:   NewSettings(),
		frameRate:  DefaultFrameRate,
		factory:    NewSegment,
		workers:    system.CPUCount(),
	}
	t.SetOutDir(dir)
	t.settings.Set(KeyImageFormat, DefaultImageFormat)
	t.settings.Set(KeyFrameName, DefaultFrameName)
	t.settings.Set(KeyResolution, DefaultResolution)

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Wrap returns a new timeline holding seg. settings, when non-nil, update
// the general frame settings.
func Wrap(seg *Segment, settings *Settings) (*Timeline, error) {
	t, err := New(WithSettings(settings))
	if err != nil {
		return nil, err
	}
	if seg != nil {
		t.AppendSegment(seg)
	}
	return t, nil
}

// Settings returns the general frame settings. Changes are seen by every
// frame realized afterwards.
func (t *Timeline) Settings() *Settings { return t.settings }

// OutDir returns the output directory with a trailing separator.
func (t *Timeline) OutDir() string { return t.settings.String(KeyOutDir) }

func (t *Timeline) SetOutDir(dir string) {
	t.settings.Set(KeyOutDir, strings.TrimRight(dir, string(filepath.Separator))+string(filepath.Separator))
}

// ResetOutDir switches output to a fresh temporary directory.
func (t *Timeline) ResetOutDir() (string, error) {
	dir, err := TempDir()
	if err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	t.SetOutDir(dir)
	return t.OutDir(), nil
}

// ImageFormat returns the file extension including the leading dot.
func (t *Timeline) ImageFormat() string { return t.settings.String(KeyImageFormat) }

// SetImageFormat sets the image format; a missing leading dot is added.
func (t *Timeline) SetImageFormat(v string) {
	if !strings.HasPrefix(v, ".") {
		v = "." + v
	}
	t.settings.Set(KeyImageFormat, v)
}

func (t *Timeline) FrameName() string { return t.settings.String(KeyFrameName) }

func (t *Timeline) SetFrameName(v string) { t.settings.Set(KeyFrameName, v) }

func (t *Timeline) Resolution() Resolution {
	r, _ := t.settings.Resolution(KeyResolution)
	return r
}

func (t *Timeline) SetResolution(r Resolution) { t.settings.Set(KeyResolution, r) }

func (t *Timeline) FrameRate() float64 { return t.frameRate }

func (t *Timeline) SetFrameRate(fps float64) error {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFrameRate, fps)
	}
	t.frameRate = fps
	return nil
}

// HighQuality is a backend hint with no effect on numbering or timing.
func (t *Timeline) HighQuality() bool { return t.highQuality }

func (t *Timeline) SetHighQuality(v bool) { t.highQuality = v }

// Workers is the number of concurrent render tasks.
func (t *Timeline) Workers() int { return t.workers }

func (t *Timeline) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	t.workers = n
}

func (t *Timeline) SegmentFactory() SegmentFactory { return t.factory }

func (t *Timeline) SetSegmentFactory(f SegmentFactory) {
	if f == nil {
		f = NewSegment
	}
	t.factory = f
}

func (t *Timeline) NumSegments() int { return len(t.segments) }

// Segments returns the owned segments in order.
func (t *Timeline) Segments() []*Segment {
	return append([]*Segment(nil), t.segments...)
}

// Segment returns the i-th segment.
func (t *Timeline) Segment(i int) (*Segment, error) {
	if i < 0 || i >= len(t.segments) {
		return nil, fmt.Errorf("segment %d: %w (timeline has %d segments)", i, ErrOutOfRange, len(t.segments))
	}
	return t.segments[i], nil
}

// AddSegment builds a segment lasting duration seconds with the segment
// factory and appends it. The frame count is duration*FrameRate rounded to
// the nearest integer.
func (t *Timeline) AddSegment(name string, fn FrameFunc, duration float64, opts ...SegmentOption) (*Segment, error) {
	numFrames := int(math.Round(duration * t.frameRate))
	if numFrames <= 0 {
		return nil, fmt.Errorf("segment %q lasting %gs at %g fps: %w", name, duration, t.frameRate, ErrInvalidCount)
	}
	seg, err := t.factory(name, fn, numFrames, opts...)
	if err != nil {
		return nil, err
	}
	return t.AppendSegment(seg), nil
}

// AppendSegment appends a copy of seg, renumbered to start right after the
// current last frame, and returns the stored copy. The original segment is
// left untouched.
func (t *Timeline) AppendSegment(seg *Segment) *Segment {
	s := seg.Copy()
	numFrames := s.NumFrames()
	first := t.last + 1
	if len(t.segments) == 0 {
		first = t.first
	}
	s.first = first
	s.last = first + numFrames - 1
	s.timeline = t
	t.segments = append(t.segments, s)
	t.last = s.last
	return s
}

// Copy returns an independent timeline with the same settings and copies of
// every segment attached to the new timeline.
func (t *Timeline) Copy() *Timeline {
	c := *t
	c.settings = t.settings.Clone()
	c.segments = make([]*Segment, len(t.segments))
	for i, s := range t.segments {
		sc := s.Copy()
		sc.timeline = &c
		c.segments[i] = sc
	}
	return &c
}

// Add returns a copy of t with a copy of other appended. other must expose
// AsSegment; otherwise ErrNotASegment is returned.
func (t *Timeline) Add(other any) (*Timeline, error) {
	seg, err := segmentOf(other)
	if err != nil {
		return nil, err
	}
	c := t.Copy()
	c.AppendSegment(seg)
	return c, nil
}

// Frame returns frame n from the segment that owns it.
func (t *Timeline) Frame(n int) (*Frame, error) {
	for _, s := range t.segments {
		f, err := s.Realize(n)
		if err == nil {
			return f, nil
		}
		if !IsOutOfRange(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("timeline: %w: %d not in [%d, %d]", ErrOutOfRange, n, t.first, t.last)
}

// SegmentFor returns the segment owning frame n.
func (t *Timeline) SegmentFor(n int) (*Segment, error) {
	for _, s := range t.segments {
		if s.Contains(n) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("timeline: %w: %d not in [%d, %d]", ErrOutOfRange, n, t.first, t.last)
}

// FrameFileName returns out_dir + frame_name + zero padded n + image_format.
func (t *Timeline) FrameFileName(n int) string {
	return fmt.Sprintf("%s%s%0*d%s", t.OutDir(), t.FrameName(), FrameNumberWidth, n, t.ImageFormat())
}

// FramePattern returns the printf-style pattern of frame file names, as
// used by ffmpeg's image2 demuxer.
func (t *Timeline) FramePattern() string {
	return fmt.Sprintf("%s%s%%0%dd%s", t.OutDir(), t.FrameName(), FrameNumberWidth, t.ImageFormat())
}

// Duration is NumFrames / FrameRate.
func (t *Timeline) Duration() time.Duration {
	return secondsToDuration(float64(t.NumFrames()) / t.frameRate)
}

// FrameTime returns the time frame n occurs (or would occur) as
// H:MM:SS.mmm. n is not checked against the timeline.
func (t *Timeline) FrameTime(n int) string {
	return FormatFrameTime(float64(n-t.first) / t.frameRate)
}

// AllFrames returns a lazy sequence over every segment's frames in order.
func (t *Timeline) AllFrames(step int) iter.Seq2[*Frame, error] {
	return func(yield func(*Frame, error) bool) {
		for _, s := range t.segments {
			for f, err := range s.Frames(step) {
				if !yield(f, err) {
					return
				}
			}
		}
	}
}

// AllIndices returns the frame numbers AllFrames(step) visits.
func (t *Timeline) AllIndices(step int) []int {
	var out []int
	for _, s := range t.segments {
		out = append(out, s.Indices(step)...)
	}
	return out
}

// SegmentInfo describes one segment of a timeline.
type SegmentInfo struct {
	Index      int    `yaml:"index"`
	Name       string `yaml:"name"`
	FirstFrame int    `yaml:"first_frame"`
	LastFrame  int    `yaml:"last_frame"`
	Start      string `yaml:"start"`
	End        string `yaml:"end"`
}

func (i SegmentInfo) String() string {
	return fmt.Sprintf("(%d) %s: %d -- %d\n  %s -- %s", i.Index, i.Name, i.FirstFrame, i.LastFrame, i.Start, i.End)
}

// Outline lists segment names, frame numbers and timing.
func (t *Timeline) Outline() []SegmentInfo {
	out := make([]SegmentInfo, len(t.segments))
	for i, s := range t.segments {
		out[i] = SegmentInfo{
			Index:      i,
			Name:       s.name,
			FirstFrame: s.first,
			LastFrame:  s.last,
			Start:      t.FrameTime(s.first),
			End:        t.FrameTime(s.last),
		}
	}
	return out
}

func (t *Timeline) String() string {
	return fmt.Sprintf("An animation timeline with %d segments.  Duration %v sec.",
		len(t.segments), t.Duration().Seconds())
}
