package content

import (
	"fmt"
	"strings"

	"github.com/fogleman/ease"
	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/framekit/internal/timeline"
)

var easings = map[string]func(float64) float64{
	"linear":         ease.Linear,
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-out-cubic":   ease.InOutCubic,
	"in-out-sine":    ease.InOutSine,
	"out-bounce":     ease.OutBounce,
	"in-out-elastic": ease.InOutElastic,
}

// Easing returns the easing function registered under name.
func Easing(name string) (func(float64) float64, error) {
	fn, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown easing: %s", name)
	}
	return fn, nil
}

// Gradient fills the frame with a color blended in HCL space between From
// and To. The parameter is clamped to [0, 1] and eased. A progress bar
// along the bottom edge tracks the raw parameter.
type Gradient struct {
	From colorful.Color
	To   colorful.Color
	Ease func(float64) float64
	Bar  bool
}

// NewGradient reads the options from, to, ease and bar.
func NewGradient(opts Options) (*Gradient, error) {
	from, err := colorful.Hex(opts.String("from", "#1e3a5f"))
	if err != nil {
		return nil, fmt.Errorf("gradient from: %w", err)
	}
	to, err := colorful.Hex(opts.String("to", "#f2a541"))
	if err != nil {
		return nil, fmt.Errorf("gradient to: %w", err)
	}
	fn, err := Easing(opts.String("ease", "linear"))
	if err != nil {
		return nil, err
	}
	return &Gradient{
		From: from,
		To:   to,
		Ease: fn,
		Bar:  opts.String("bar", "true") != "false",
	}, nil
}

// ColorAt returns the fill color for parameter t.
func (g *Gradient) ColorAt(t float64) colorful.Color {
	k := clamp01(t)
	if g.Ease != nil {
		k = g.Ease(k)
	}
	return g.From.BlendHcl(g.To, k).Clamped()
}

func (g *Gradient) Frame(t float64) (timeline.Content, error) {
	c := g.ColorAt(t)
	progress := clamp01(t)
	return &Drawing{
		Draw: func(dc *gg.Context, _ *timeline.Settings) error {
			w, h := float64(dc.Width()), float64(dc.Height())
			dc.SetColor(c)
			dc.DrawRectangle(0, 0, w, h)
			if err := dc.Fill(); err != nil {
				return err
			}
			if !g.Bar {
				return nil
			}
			dc.SetRGBA(1, 1, 1, 0.8)
			dc.DrawRectangle(0, h*0.95, w*progress, h*0.02)
			return dc.Fill()
		},
	}, nil
}
