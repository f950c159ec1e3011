package timeline

import (
	"errors"
	"reflect"
	"testing"
)

func TestFrameRange(t *testing.T) {
	r := FrameRange{first: 3, last: 7}
	if r.NumFrames() != 5 {
		t.Errorf("NumFrames = %d, want 5", r.NumFrames())
	}
	if got := r.Frames(); !reflect.DeepEqual(got, []int{3, 4, 5, 6, 7}) {
		t.Errorf("Frames = %v", got)
	}
	if got := r.Indices(2); !reflect.DeepEqual(got, []int{3, 5, 7}) {
		t.Errorf("Indices(2) = %v", got)
	}
	if got := r.Indices(0); len(got) != 5 {
		t.Errorf("Indices(0) = %v, want every frame", got)
	}
	for _, n := range []int{2, 8} {
		if err := r.CheckFrame(n); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("CheckFrame(%d) = %v, want ErrOutOfRange", n, err)
		}
	}
	if err := r.CheckFrame(3); err != nil {
		t.Errorf("CheckFrame(3) = %v", err)
	}

	r.SetFirstFrame(10)
	r.SetLastFrame(10)
	if r.FirstFrame() != 10 || r.LastFrame() != 10 || r.NumFrames() != 1 {
		t.Errorf("after set: %+v", r)
	}
}

func TestEmptyRange(t *testing.T) {
	r := emptyRange(0)
	if r.NumFrames() != 0 {
		t.Errorf("NumFrames = %d, want 0", r.NumFrames())
	}
	if r.Frames() != nil {
		t.Errorf("Frames = %v, want none", r.Frames())
	}
	if r.Contains(0) {
		t.Error("empty range contains 0")
	}
}
