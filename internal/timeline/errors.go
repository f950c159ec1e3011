package timeline

import "errors"

var (
	// ErrOutOfRange is returned when a frame index is not covered by a
	// segment or timeline.
	ErrOutOfRange = errors.New("frame number out of range")

	// ErrInvalidCount is returned when a segment would have no frames.
	ErrInvalidCount = errors.New("frame count must be positive")

	// ErrNotASegment is returned when a composition operand is not a segment.
	ErrNotASegment = errors.New("operand does not appear to be a Segment")

	ErrInvalidStep      = errors.New("step must be at least 1")
	ErrInvalidFrameRate = errors.New("frame rate must be positive")
)
