// Package director turns YAML scripts into timelines.
package director

import (
	"errors"
	"fmt"
	"io"

	"github.com/ivlev/framekit/internal/content"
	"github.com/ivlev/framekit/internal/system"
	"github.com/ivlev/framekit/internal/timeline"
)

// GeneratorFunc creates the content generator of a segment.
type GeneratorFunc func(kind string, opts content.Options) (content.Generator, error)

// Director builds timelines from scripts.
type Director struct {
	Generators GeneratorFunc
}

func NewDirector() *Director {
	return &Director{Generators: content.New}
}

// Production is a timeline built from a script together with the resources
// its generators hold.
type Production struct {
	Timeline *timeline.Timeline
	closers  []io.Closer
}

// Close releases every generator resource.
func (p *Production) Close() error {
	var errs []error
	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build appends the script's segments to tl in order. Slates without an
// explicit parameter range count seconds from the start of their segment.
func (d *Director) Build(script *Script, tl *timeline.Timeline) (*Production, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}
	if script.FrameRate > 0 {
		if err := tl.SetFrameRate(script.FrameRate); err != nil {
			return nil, err
		}
	}
	gen := d.Generators
	if gen == nil {
		gen = content.New
	}

	p := &Production{Timeline: tl}
	for i, spec := range script.Segments {
		if err := d.add(p, gen, spec); err != nil {
			p.Close()
			return nil, fmt.Errorf("segment %d (%s): %w", i, spec.Name, err)
		}
	}
	system.Logger().Debug("script built", "segments", tl.NumSegments(), "frames", tl.NumFrames())
	return p, nil
}

func (d *Director) add(p *Production, gen GeneratorFunc, spec SegmentSpec) error {
	g, err := gen(spec.Kind, spec.Options)
	if err != nil {
		return err
	}
	if c, ok := g.(io.Closer); ok {
		p.closers = append(p.closers, c)
	}
	if pages, ok := g.(*content.Pages); ok {
		for page, kfs := range spec.Keyframes {
			pages.Keyframes[page] = kfs
		}
	}

	tl := p.Timeline
	opts := paramOptions(spec, tl.FrameRate())
	name := spec.Name
	if name == "" {
		name = fmt.Sprintf("%s %d", spec.Kind, tl.NumSegments())
	}

	if spec.Frames > 0 {
		seg, err := tl.SegmentFactory()(name, content.FrameFunc(g), spec.Frames, opts...)
		if err != nil {
			return err
		}
		tl.AppendSegment(seg)
		return nil
	}
	_, err = tl.AddSegment(name, content.FrameFunc(g), spec.Duration, opts...)
	return err
}

func paramOptions(spec SegmentSpec, fps float64) []timeline.SegmentOption {
	lo, hi := 0.0, 1.0
	if spec.Kind == "slate" || spec.Kind == "" {
		hi = spec.Duration
		if spec.Frames > 0 {
			hi = float64(spec.Frames) / fps
		}
	}
	if spec.ParamMin != nil {
		lo = *spec.ParamMin
	}
	if spec.ParamMax != nil {
		hi = *spec.ParamMax
	}
	return []timeline.SegmentOption{timeline.WithParamRange(lo, hi)}
}

// Draft returns a starting script for a document: a slate, the pages with
// a centered zoom and a closing gradient.
func Draft(input string, pageCount int, perPage float64) *Script {
	if perPage <= 0 {
		perPage = 3
	}
	return &Script{
		Version: ScriptVersion,
		Segments: []SegmentSpec{
			{
				Name:     "Intro",
				Kind:     "slate",
				Duration: 2,
				Options:  content.Options{"title": "framekit"},
			},
			{
				Name:     "Pages",
				Kind:     "pages",
				Duration: perPage * float64(max(pageCount, 1)),
				Options:  content.Options{"source": input, "zoom": "center", "peak": "1.5"},
			},
			{
				Name:     "Outro",
				Kind:     "gradient",
				Duration: 1,
				Options:  content.Options{"ease": "in-out-sine"},
			},
		},
	}
}
