package engine

import (
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/framekit/internal/system"
)

// Pool runs fn(i) for every i in [0, n) and returns once all calls have
// returned. Calls may run concurrently.
type Pool interface {
	Each(n int, fn func(i int))
}

// LimitPool runs at most Workers calls at a time.
type LimitPool struct {
	Workers int
}

// NewLimitPool returns a pool sized to workers, or to the CPU count when
// workers is below 1.
func NewLimitPool(workers int) LimitPool {
	if workers < 1 {
		workers = system.CPUCount()
	}
	return LimitPool{Workers: workers}
}

func (p LimitPool) Each(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := p.Workers
	if workers < 1 {
		workers = system.CPUCount()
	}
	if workers > n {
		workers = n
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// SerialPool runs calls one after another in index order.
type SerialPool struct{}

func (SerialPool) Each(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		fn(i)
	}
}
