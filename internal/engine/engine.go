package engine

import (
	"errors"
	"fmt"
	"iter"
	"os"

	"github.com/ivlev/framekit/internal/render"
	"github.com/ivlev/framekit/internal/timeline"
)

// Project renders a Timeline: it turns segment, frame and whole-timeline
// requests into dispatcher batches and reports their progress.
type Project struct {
	Timeline *timeline.Timeline
	Backend  render.Backend
	Progress Progress
	// Pool overrides the worker pool sized from Timeline.Workers.
	Pool Pool
	// PreSave runs on the worker before each frame is saved.
	PreSave func(f *timeline.Frame) error
}

func NewProject(tl *timeline.Timeline, backend render.Backend) *Project {
	return &Project{
		Timeline: tl,
		Backend:  backend,
		Progress: NewLogProgress(os.Stdout),
	}
}

func (p *Project) dispatcher(resolver Resolver) *Dispatcher {
	pool := p.Pool
	if pool == nil {
		pool = NewLimitPool(p.Timeline.Workers())
	}
	return &Dispatcher{
		Pool:        pool,
		Backend:     p.Backend,
		Resolver:    resolver,
		PreSave:     p.PreSave,
		HighQuality: p.Timeline.HighQuality(),
	}
}

func (p *Project) progress() Progress {
	if p.Progress == nil {
		return nopProgress{}
	}
	return p.Progress
}

func (p *Project) run(b Batch, resolver Resolver, items []Item) error {
	d := p.dispatcher(resolver)
	if err := d.Validate(); err != nil {
		return err
	}
	prog := p.progress()
	prog.Begin(b)
	err := d.Run(items, prog.Finished)
	failed := 0
	var be *BatchError
	if errors.As(err, &be) {
		failed = len(be.Failures)
	}
	prog.End(b, failed)
	return err
}

// RenderSegment renders every step-th frame of seg. seg is realized
// directly, so it need not belong to the project's timeline.
func (p *Project) RenderSegment(seg *timeline.Segment, step int) error {
	if step < 1 {
		return fmt.Errorf("render segment %q: %w (got %d)", seg.Name(), timeline.ErrInvalidStep, step)
	}
	indices := seg.Indices(step)
	b := Batch{
		Label:  seg.Name(),
		First:  seg.FirstFrame(),
		Last:   seg.LastFrame(),
		Count:  len(indices),
		OutDir: p.Timeline.OutDir(),
	}
	return p.run(b, ResolverFunc(seg.Realize), IndexItems(indices))
}

// RenderSegmentAt renders the i-th segment of the timeline.
func (p *Project) RenderSegmentAt(i, step int) error {
	seg, err := p.Timeline.Segment(i)
	if err != nil {
		return err
	}
	return p.RenderSegment(seg, step)
}

// RenderFrames renders the given frame numbers of the timeline.
func (p *Project) RenderFrames(frames []int) error {
	if len(frames) == 0 {
		return nil
	}
	b := Batch{
		First:  frames[0],
		Last:   frames[len(frames)-1],
		Count:  len(frames),
		OutDir: p.Timeline.OutDir(),
	}
	return p.run(b, p.Timeline, IndexItems(frames))
}

// RenderAll renders every step-th frame of every segment.
func (p *Project) RenderAll(step int) error {
	if step < 1 {
		return fmt.Errorf("render all: %w (got %d)", timeline.ErrInvalidStep, step)
	}
	indices := p.Timeline.AllIndices(step)
	b := Batch{
		Label:  "all",
		First:  p.Timeline.FirstFrame(),
		Last:   p.Timeline.LastFrame(),
		Count:  len(indices),
		OutDir: p.Timeline.OutDir(),
	}
	return p.run(b, p.Timeline, IndexItems(indices))
}

// RenderSequence renders already realized frames, such as those produced
// by Timeline.AllFrames. The first realization error stops collection
// before anything is dispatched.
func (p *Project) RenderSequence(label string, frames iter.Seq2[*timeline.Frame, error]) error {
	var realized []*timeline.Frame
	for f, err := range frames {
		if err != nil {
			return err
		}
		realized = append(realized, f)
	}
	if len(realized) == 0 {
		return nil
	}
	b := Batch{
		Label:  label,
		First:  realized[0].Index,
		Last:   realized[len(realized)-1].Index,
		Count:  len(realized),
		OutDir: p.Timeline.OutDir(),
	}
	return p.run(b, p.Timeline, FrameItems(realized))
}

// ShowFrame displays frame n of the timeline without saving it.
func (p *Project) ShowFrame(n int) error {
	f, err := p.Timeline.Frame(n)
	if err != nil {
		return err
	}
	return p.Show(f)
}

// Show displays a realized frame without saving it.
func (p *Project) Show(f *timeline.Frame) error {
	if p.Backend == nil {
		return ErrNoBackend
	}
	scene, err := f.Scene()
	if err != nil {
		return err
	}
	return p.Backend.Show(scene, f.Target(p.Timeline.HighQuality()))
}
