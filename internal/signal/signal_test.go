package signal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalSetBumpsVersion(t *testing.T) {
	s := New(1)
	assert.Equal(t, 1, s.Get())
	assert.Equal(t, uint64(0), s.Version())

	s.Set(2)
	assert.Equal(t, 2, s.Get())
	assert.Equal(t, uint64(1), s.Version())

	s.Update(func(v int) int { return v * 10 })
	assert.Equal(t, 20, s.Get())
	assert.Equal(t, uint64(2), s.Version())
}

func TestSignalConcurrentUpdates(t *testing.T) {
	s := New([]int{})
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(func(v []int) []int { return append(v[:len(v):len(v)], i) })
		}()
	}
	wg.Wait()
	assert.Len(t, s.Get(), 50)
	assert.Equal(t, uint64(50), s.Version())
}

func TestSignalSubscribe(t *testing.T) {
	s := New("a")
	var got []string
	cancel := s.Subscribe(func(v string) { got = append(got, v) })

	s.Set("b")
	s.Set("c")
	cancel()
	cancel()
	s.Set("d")

	assert.Equal(t, []string{"b", "c"}, got)
}

func TestSubscriberMayReadSignal(t *testing.T) {
	s := New(0)
	var read int
	s.Subscribe(func(int) { read = s.Get() })
	s.Set(7)
	assert.Equal(t, 7, read)
}

func TestComputedCachesUntilSourceChanges(t *testing.T) {
	a := New(2)
	b := New(3)
	calls := 0
	sum := NewComputed(func() int {
		calls++
		return a.Get() + b.Get()
	}, a, b)

	require.Equal(t, 5, sum.Get())
	require.Equal(t, 5, sum.Get())
	assert.Equal(t, 1, calls, "second read should hit the cache")

	b.Set(10)
	assert.Equal(t, 12, sum.Get())
	assert.Equal(t, 2, calls)

	// Writing the same value still counts as a change.
	a.Set(2)
	assert.Equal(t, 12, sum.Get())
	assert.Equal(t, 3, calls)
}

func TestComputedWithoutSources(t *testing.T) {
	calls := 0
	c := NewComputed(func() string {
		calls++
		return "const"
	})
	assert.Equal(t, "const", c.Get())
	assert.Equal(t, "const", c.Get())
	assert.Equal(t, 1, calls)
}
