// Package camera interpolates a virtual camera between keyframes for page
// content: pan to a region of the page and zoom into it.
package camera

import (
	"image"
	"sort"
	"strings"

	"github.com/fogleman/ease"
)

// Keyframe is a camera position at a point of the page's local time.
type Keyframe struct {
	Time  float64   `yaml:"time"`  // Local time in [0, 1]
	Focus string    `yaml:"focus"` // Description of focus region
	Rect  Rectangle `yaml:"rect"`  // Target rectangle in page pixels
	Zoom  float64   `yaml:"zoom"`  // Zoom level (1.0 = no zoom)
}

// Rectangle is a bounding box in page pixels.
type Rectangle struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func (r Rectangle) center() (float64, float64) {
	return float64(r.X) + float64(r.W)/2, float64(r.Y) + float64(r.H)/2
}

// State is the camera center and zoom at a moment.
type State struct {
	X    float64
	Y    float64
	Zoom float64
}

// Still returns a state centered on a page of the given size without zoom.
func Still(bounds image.Rectangle) State {
	return State{
		X:    float64(bounds.Min.X) + float64(bounds.Dx())/2,
		Y:    float64(bounds.Min.Y) + float64(bounds.Dy())/2,
		Zoom: 1,
	}
}

func stateOf(kf Keyframe) State {
	x, y := kf.Rect.center()
	zoom := kf.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return State{X: x, Y: y, Zoom: zoom}
}

// Interpolate returns the camera state at local time t. Keyframes must be
// sorted by time; before the first and after the last keyframe the camera
// holds still. Motion between keyframes is eased in and out.
func Interpolate(keyframes []Keyframe, t float64, easing func(float64) float64) State {
	if len(keyframes) == 0 {
		return State{Zoom: 1}
	}
	if easing == nil {
		easing = ease.InOutCubic
	}

	if t <= keyframes[0].Time {
		return stateOf(keyframes[0])
	}
	last := keyframes[len(keyframes)-1]
	if t >= last.Time {
		return stateOf(last)
	}

	i := sort.Search(len(keyframes), func(i int) bool { return keyframes[i].Time > t }) - 1
	prev, next := keyframes[i], keyframes[i+1]

	span := next.Time - prev.Time
	if span <= 0 {
		return stateOf(next)
	}
	k := easing((t - prev.Time) / span)

	a, b := stateOf(prev), stateOf(next)
	return State{
		X:    lerp(a.X, b.X, k),
		Y:    lerp(a.Y, b.Y, k),
		Zoom: lerp(a.Zoom, b.Zoom, k),
	}
}

// ZoomIn returns keyframes moving from the full page at t=0 to a view
// zoomed by peak and anchored by mode at t=1. Modes: center, top-left,
// top-right, bottom-left, bottom-right.
func ZoomIn(bounds image.Rectangle, mode string, peak float64) []Keyframe {
	if peak < 1 {
		peak = 1
	}
	full := Rectangle{X: bounds.Min.X, Y: bounds.Min.Y, W: bounds.Dx(), H: bounds.Dy()}
	w := int(float64(bounds.Dx()) / peak)
	h := int(float64(bounds.Dy()) / peak)

	target := Rectangle{W: w, H: h}
	switch strings.ToLower(mode) {
	case "top-left":
		target.X, target.Y = bounds.Min.X, bounds.Min.Y
	case "top-right":
		target.X, target.Y = bounds.Max.X-w, bounds.Min.Y
	case "bottom-left":
		target.X, target.Y = bounds.Min.X, bounds.Max.Y-h
	case "bottom-right":
		target.X, target.Y = bounds.Max.X-w, bounds.Max.Y-h
	default: // center
		target.X, target.Y = bounds.Min.X+(bounds.Dx()-w)/2, bounds.Min.Y+(bounds.Dy()-h)/2
	}

	return []Keyframe{
		{Time: 0, Focus: "full_view", Rect: full, Zoom: 1},
		{Time: 1, Focus: mode, Rect: target, Zoom: peak},
	}
}

// Sorted returns a copy of keyframes ordered by time.
func Sorted(keyframes []Keyframe) []Keyframe {
	out := append([]Keyframe(nil), keyframes...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// Viewport returns the source rectangle of a page with the given bounds
// seen by a camera in state s. The rectangle keeps the aspect ratio of the
// page and is clamped inside it.
func Viewport(bounds image.Rectangle, s State) image.Rectangle {
	zoom := s.Zoom
	if zoom < 1 {
		zoom = 1
	}
	w := int(float64(bounds.Dx()) / zoom)
	h := int(float64(bounds.Dy()) / zoom)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	x0 := int(s.X - float64(w)/2)
	y0 := int(s.Y - float64(h)/2)
	x0 = clamp(x0, bounds.Min.X, bounds.Max.X-w)
	y0 = clamp(y0, bounds.Min.Y, bounds.Max.Y-h)
	return image.Rect(x0, y0, x0+w, y0+h)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
