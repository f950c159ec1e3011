package engine

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ivlev/framekit/internal/render"
	"github.com/ivlev/framekit/internal/system"
	"github.com/ivlev/framekit/internal/timeline"
)

var (
	ErrNoBackend  = errors.New("no render backend configured")
	ErrNoResolver = errors.New("no resolver for frame numbers")
)

// Resolver realizes frame numbers. *timeline.Timeline satisfies it.
type Resolver interface {
	Frame(n int) (*timeline.Frame, error)
}

// ResolverFunc adapts a function, such as (*timeline.Segment).Realize, to
// Resolver.
type ResolverFunc func(n int) (*timeline.Frame, error)

func (f ResolverFunc) Frame(n int) (*timeline.Frame, error) { return f(n) }

// Item is one unit of render work: a realized frame, or a frame number to
// be realized by the worker through the dispatcher's Resolver.
type Item struct {
	Index int
	Frame *timeline.Frame
}

// IndexItems wraps frame numbers.
func IndexItems(ns []int) []Item {
	items := make([]Item, len(ns))
	for i, n := range ns {
		items[i] = Item{Index: n}
	}
	return items
}

// FrameItems wraps realized frames.
func FrameItems(frames []*timeline.Frame) []Item {
	items := make([]Item, len(frames))
	for i, f := range frames {
		items[i] = Item{Index: f.Index, Frame: f}
	}
	return items
}

// Result reports the completion of one item.
type Result struct {
	Index    int
	Segment  string
	FileName string
	Elapsed  time.Duration
	Err      error
}

func (r Result) String() string {
	if r.Segment == "" {
		return fmt.Sprintf("frame %d", r.Index)
	}
	return fmt.Sprintf("frame %d (%s)", r.Index, r.Segment)
}

// BatchError lists the items of a batch that failed.
type BatchError struct {
	Total    int
	Failures []Result
}

func (e *BatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d frames failed", len(e.Failures), e.Total)
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "; %s: %v", f, f.Err)
	}
	return b.String()
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// Dispatcher saves batches of frames through a Backend on a Pool.
type Dispatcher struct {
	Pool     Pool
	Backend  render.Backend
	Resolver Resolver
	// PreSave runs on the worker right before a frame's scene is built.
	PreSave     func(f *timeline.Frame) error
	HighQuality bool
	// TempDir receives frames without a file name. Empty means os.TempDir.
	TempDir string
}

func (d *Dispatcher) pool() Pool {
	if d.Pool == nil {
		return NewLimitPool(0)
	}
	return d.Pool
}

// Validate reports configuration errors that would fail every item.
func (d *Dispatcher) Validate() error {
	if d.Backend == nil {
		return ErrNoBackend
	}
	return nil
}

// Dispatch processes items on the pool and sends one Result per item in
// completion order. The channel is closed after the last item completes.
// A failing item never stops the others.
func (d *Dispatcher) Dispatch(items []Item) <-chan Result {
	out := make(chan Result, len(items))
	go func() {
		defer close(out)
		d.pool().Each(len(items), func(i int) {
			out <- d.process(items[i])
		})
	}()
	return out
}

// Run dispatches items, calls onDone for every completion and returns a
// *BatchError when any item failed.
func (d *Dispatcher) Run(items []Item, onDone func(Result)) error {
	if err := d.Validate(); err != nil {
		return err
	}
	var failures []Result
	for res := range d.Dispatch(items) {
		if res.Err != nil {
			failures = append(failures, res)
		}
		if onDone != nil {
			onDone(res)
		}
	}
	if len(failures) > 0 {
		return &BatchError{Total: len(items), Failures: failures}
	}
	return nil
}

func (d *Dispatcher) process(it Item) (res Result) {
	start := time.Now()
	res.Index = it.Index
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("panic: %v", r)
		}
		res.Elapsed = time.Since(start)
	}()

	f := it.Frame
	if f == nil {
		if d.Resolver == nil {
			res.Err = ErrNoResolver
			return res
		}
		var err error
		if f, err = d.Resolver.Frame(it.Index); err != nil {
			res.Err = err
			return res
		}
	}
	res.Index = f.Index
	res.Segment = f.Segment

	if d.Backend == nil {
		res.Err = ErrNoBackend
		return res
	}
	if d.PreSave != nil {
		if err := d.PreSave(f); err != nil {
			res.Err = fmt.Errorf("pre-save: %w", err)
			return res
		}
	}

	scene, err := f.Scene()
	if err != nil {
		res.Err = err
		return res
	}

	target := f.Target(d.HighQuality)
	if target.Path == "" {
		if target.Path, err = d.tempPath(target.Format); err != nil {
			res.Err = err
			return res
		}
	}
	res.FileName = target.Path

	system.Logger().Debug("saving frame", "frame", f.Index, "segment", f.Segment, "path", target.Path)
	if err := d.Backend.Save(scene, target); err != nil {
		res.Err = fmt.Errorf("save %s: %w", target.Path, err)
	}
	return res
}

// tempPath reserves a randomly named file for a frame that has no file name.
func (d *Dispatcher) tempPath(format string) (string, error) {
	if format == "" {
		format = timeline.DefaultImageFormat
	}
	f, err := os.CreateTemp(d.TempDir, "framekit_frame_*"+format)
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", err
	}
	return name, nil
}
