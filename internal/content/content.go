// Package content provides the frame generators scripts can refer to by
// kind: slates, color gradients and paged documents.
package content

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"

	"github.com/ivlev/framekit/internal/render"
	"github.com/ivlev/framekit/internal/timeline"
)

// Generator produces frame content from a parameter value.
type Generator interface {
	Frame(t float64) (timeline.Content, error)
}

// FrameFunc adapts g for use as a segment frame function.
func FrameFunc(g Generator) timeline.FrameFunc {
	return g.Frame
}

// Drawing is content drawn by a function. Draw receives the merged frame
// settings and must scale its output to the context size.
type Drawing struct {
	Own  *timeline.Settings
	Draw func(dc *gg.Context, s *timeline.Settings) error
}

func (d *Drawing) Settings() *timeline.Settings {
	return d.Own
}

func (d *Drawing) Scene(s *timeline.Settings) (render.Scene, error) {
	if d.Draw == nil {
		return nil, fmt.Errorf("drawing has no draw function")
	}
	return render.SceneFunc(func(dc *gg.Context) error {
		return d.Draw(dc, s)
	}), nil
}

// Options are the string options of a script segment.
type Options map[string]string

func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok && v != "" {
		return v
	}
	return def
}

func (o Options) Float(key string, def float64) (float64, error) {
	v, ok := o[key]
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("option %s: %w", key, err)
	}
	return f, nil
}

func (o Options) Int(key string, def int) (int, error) {
	v, ok := o[key]
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("option %s: %w", key, err)
	}
	return n, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
