// Package signal provides small reactive primitives: a writable Signal and a
// Computed value that re-evaluates only when one of its sources changed.
package signal

import "sync"

// Source is anything a Computed can depend on.
type Source interface {
	Version() uint64
}

// Signal holds a value and a version that increments on every write.
type Signal[T any] struct {
	mu      sync.RWMutex
	value   T
	version uint64

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(T)
}

func New[T any](v T) *Signal[T] {
	return &Signal[T]{value: v, subs: make(map[int]func(T))}
}

func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

func (s *Signal[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.version++
	s.mu.Unlock()
	s.notify(v)
}

// Update applies fn to the current value under the write lock, so two
// concurrent updates never lose each other's result.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	s.version++
	s.mu.Unlock()
	s.notify(v)
}

// Subscribe registers fn to run after every write. Callbacks run outside the
// signal's lock and may read it again.
func (s *Signal[T]) Subscribe(fn func(T)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Signal[T]) notify(v T) {
	s.subMu.Lock()
	fns := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}
