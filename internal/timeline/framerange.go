package timeline

import "fmt"

// FrameRange is an inclusive [first, last] span of frame numbers shared by
// segments and timelines. A range with last == first-1 holds no frames.
type FrameRange struct {
	first int
	last  int
}

func emptyRange(first int) FrameRange {
	return FrameRange{first: first, last: first - 1}
}

func (r *FrameRange) FirstFrame() int { return r.first }

func (r *FrameRange) SetFirstFrame(v int) { r.first = v }

func (r *FrameRange) LastFrame() int { return r.last }

func (r *FrameRange) SetLastFrame(v int) { r.last = v }

// NumFrames returns last - first + 1.
func (r *FrameRange) NumFrames() int {
	return r.last - r.first + 1
}

// Contains reports whether n is a valid frame number of the range.
func (r *FrameRange) Contains(n int) bool {
	return n >= r.first && n <= r.last
}

// Frames returns every frame number of the range in order.
func (r *FrameRange) Frames() []int {
	return r.Indices(1)
}

// Indices returns every step-th frame number starting at the first frame.
// A step below 1 is treated as 1.
func (r *FrameRange) Indices(step int) []int {
	if step < 1 {
		step = 1
	}
	if r.NumFrames() <= 0 {
		return nil
	}
	out := make([]int, 0, (r.NumFrames()+step-1)/step)
	for n := r.first; n <= r.last; n += step {
		out = append(out, n)
	}
	return out
}

// CheckFrame returns an ErrOutOfRange error when n is outside the range.
func (r *FrameRange) CheckFrame(n int) error {
	if !r.Contains(n) {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, n, r.first, r.last)
	}
	return nil
}
