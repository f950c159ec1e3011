package camera

import (
	"image"
	"math"
	"testing"

	"github.com/fogleman/ease"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestInterpolate(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	kfs := []Keyframe{
		{Time: 0, Rect: Rectangle{W: 100, H: 100}, Zoom: 1},
		{Time: 0.5, Rect: Rectangle{X: 50, Y: 50, W: 50, H: 50}, Zoom: 2},
		{Time: 1, Rect: Rectangle{X: 50, Y: 50, W: 50, H: 50}, Zoom: 2},
	}

	testCases := []struct {
		t    float64
		want State
	}{
		{-1, State{X: 50, Y: 50, Zoom: 1}},
		{0, State{X: 50, Y: 50, Zoom: 1}},
		{0.25, State{X: 62.5, Y: 62.5, Zoom: 1.5}},
		{0.5, State{X: 75, Y: 75, Zoom: 2}},
		{0.75, State{X: 75, Y: 75, Zoom: 2}},
		{2, State{X: 75, Y: 75, Zoom: 2}},
	}
	for _, tc := range testCases {
		got := Interpolate(kfs, tc.t, ease.Linear)
		if !almostEqual(got.X, tc.want.X) || !almostEqual(got.Y, tc.want.Y) || !almostEqual(got.Zoom, tc.want.Zoom) {
			t.Errorf("Interpolate(%v) = %+v, want %+v", tc.t, got, tc.want)
		}
	}

	if got := Interpolate(nil, 0.5, nil); got.Zoom != 1 {
		t.Errorf("no keyframes: zoom = %v, want 1", got.Zoom)
	}
	if s := Still(bounds); s != (State{X: 50, Y: 50, Zoom: 1}) {
		t.Errorf("Still = %+v", s)
	}
}

func TestInterpolateDefaultEasing(t *testing.T) {
	kfs := []Keyframe{
		{Time: 0, Rect: Rectangle{W: 10, H: 10}, Zoom: 1},
		{Time: 1, Rect: Rectangle{W: 10, H: 10}, Zoom: 3},
	}
	got := Interpolate(kfs, 0.25, nil)
	want := 1 + 2*ease.InOutCubic(0.25)
	if !almostEqual(got.Zoom, want) {
		t.Errorf("zoom = %v, want %v", got.Zoom, want)
	}
}

func TestZoomIn(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)
	testCases := []struct {
		mode string
		want Rectangle
	}{
		{"center", Rectangle{X: 25, Y: 20, W: 50, H: 40}},
		{"top-left", Rectangle{X: 0, Y: 0, W: 50, H: 40}},
		{"top-right", Rectangle{X: 50, Y: 0, W: 50, H: 40}},
		{"bottom-left", Rectangle{X: 0, Y: 40, W: 50, H: 40}},
		{"Bottom-Right", Rectangle{X: 50, Y: 40, W: 50, H: 40}},
	}
	for _, tc := range testCases {
		t.Run(tc.mode, func(t *testing.T) {
			kfs := ZoomIn(bounds, tc.mode, 2)
			if len(kfs) != 2 {
				t.Fatalf("len = %d, want 2", len(kfs))
			}
			if kfs[0].Rect != (Rectangle{W: 100, H: 80}) || kfs[0].Zoom != 1 {
				t.Errorf("first keyframe = %+v", kfs[0])
			}
			if kfs[1].Rect != tc.want || kfs[1].Zoom != 2 || kfs[1].Time != 1 {
				t.Errorf("last keyframe = %+v, want rect %+v", kfs[1], tc.want)
			}
		})
	}

	if kfs := ZoomIn(bounds, "center", 0.5); kfs[1].Zoom != 1 {
		t.Errorf("peak below 1 not raised: %v", kfs[1].Zoom)
	}
}

func TestViewport(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	testCases := []struct {
		name  string
		state State
		want  image.Rectangle
	}{
		{"full", State{X: 50, Y: 50, Zoom: 1}, bounds},
		{"zoom out clamps to full", State{X: 50, Y: 50, Zoom: 0.5}, bounds},
		{"centered", State{X: 50, Y: 50, Zoom: 2}, image.Rect(25, 25, 75, 75)},
		{"clamped top left", State{X: 0, Y: 0, Zoom: 2}, image.Rect(0, 0, 50, 50)},
		{"clamped bottom right", State{X: 100, Y: 100, Zoom: 4}, image.Rect(75, 75, 100, 100)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Viewport(bounds, tc.state); got != tc.want {
				t.Errorf("Viewport = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSorted(t *testing.T) {
	in := []Keyframe{{Time: 1, Focus: "c"}, {Time: 0, Focus: "a"}, {Time: 0.5, Focus: "b"}}
	out := Sorted(in)
	for i, want := range []string{"a", "b", "c"} {
		if out[i].Focus != want {
			t.Errorf("out[%d] = %s, want %s", i, out[i].Focus, want)
		}
	}
	if in[0].Focus != "c" {
		t.Error("Sorted modified its input")
	}
}
