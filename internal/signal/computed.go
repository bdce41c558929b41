package signal

import (
	"slices"
	"sync"
)

// Computed caches the result of a pure function of its sources. Get
// re-evaluates only when a source version moved since the last evaluation.
type Computed[T any] struct {
	fn   func() T
	deps []Source

	mu    sync.Mutex
	seen  []uint64
	value T
	valid bool
}

func NewComputed[T any](fn func() T, deps ...Source) *Computed[T] {
	return &Computed[T]{fn: fn, deps: deps}
}

func (c *Computed[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Versions are read before fn runs: a write racing with fn leaves a stale
	// key behind and the next Get evaluates again.
	versions := make([]uint64, len(c.deps))
	for i, d := range c.deps {
		versions[i] = d.Version()
	}
	if c.valid && slices.Equal(versions, c.seen) {
		return c.value
	}
	c.value = c.fn()
	c.seen = versions
	c.valid = true
	return c.value
}
