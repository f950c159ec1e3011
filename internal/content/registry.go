package content

import "fmt"

// Kinds lists the generator kinds accepted by New.
var Kinds = []string{"slate", "gradient", "pages"}

// New creates a generator of the given kind. Generators holding resources
// implement io.Closer.
func New(kind string, opts Options) (Generator, error) {
	switch kind {
	case "slate", "":
		return NewSlate(opts)
	case "gradient":
		return NewGradient(opts)
	case "pages":
		return NewPages(opts)
	default:
		return nil, fmt.Errorf("unknown content kind: %s", kind)
	}
}
