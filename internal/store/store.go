// Package store holds the todo collection, the loading flag and the active
// filter, and derives the filtered view from them.
//
// Every mutating operation follows the same shape: call the data service,
// wait for its single result, then patch the part of the state the result
// replaces. Nothing is retried and nothing times out; service errors are
// returned to the caller.
package store

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/todos/internal/logging"
	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/service"
	"github.com/Makepad-fr/todos/internal/signal"
)

var ErrNotFound = errors.New("todo not found")

// Snapshot is a copy of the store's state.
type Snapshot struct {
	Todos   []model.Todo
	Loading bool
	Filter  model.Filter
}

type Store struct {
	svc service.Service
	log *logrus.Entry

	todos    *signal.Signal[[]model.Todo]
	loading  *signal.Signal[bool]
	filter   *signal.Signal[model.Filter]
	filtered *signal.Computed[[]model.Todo]
}

type Option func(*Store)

// WithFilter sets the initial filter. Invalid values are ignored.
func WithFilter(f model.Filter) Option {
	return func(s *Store) {
		if f.Valid() {
			s.filter.Set(f)
		}
	}
}

func WithLogger(l *logrus.Entry) Option { return func(s *Store) { s.log = l } }

// New builds an empty store (no todos, not loading, filter all) on top of svc.
func New(svc service.Service, opts ...Option) *Store {
	s := &Store{
		svc:     svc,
		todos:   signal.New([]model.Todo{}),
		loading: signal.New(false),
		filter:  signal.New(model.FilterAll),
	}
	s.filtered = signal.NewComputed(func() []model.Todo {
		return model.Apply(s.todos.Get(), s.filter.Get())
	}, s.todos, s.filter)

	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logging.NewLogger("store")
	}
	return s
}

// ------- operations -------

// LoadAll replaces the collection with the service's. Loading is true for
// the duration of the call, including when it fails.
func (s *Store) LoadAll() error {
	s.loading.Set(true)
	todos, err := s.svc.GetTodos()
	if err != nil {
		s.loading.Set(false)
		s.log.WithError(err).Warn("load failed")
		return fmt.Errorf("load todos: %w", err)
	}
	s.todos.Set(slices.Clone(todos))
	s.loading.Set(false)
	s.log.WithField("count", len(todos)).Debug("loaded")
	return nil
}

// Add creates a pending todo and appends the service's record.
func (s *Store) Add(title string) error {
	created, err := s.svc.AddTodo(model.NewTodo{Title: title, Completed: false})
	if err != nil {
		return fmt.Errorf("add todo: %w", err)
	}
	s.todos.Update(func(cur []model.Todo) []model.Todo {
		return append(slices.Clip(cur), created)
	})
	s.log.WithFields(logrus.Fields{"id": created.ID, "title": created.Title}).Debug("added")
	return nil
}

// DeleteTodo removes every item with id. An unknown id is not an error.
func (s *Store) DeleteTodo(id string) error {
	if err := s.svc.DeleteTodo(id); err != nil {
		return fmt.Errorf("delete todo %s: %w", id, err)
	}
	s.todos.Update(func(cur []model.Todo) []model.Todo {
		out := make([]model.Todo, 0, len(cur))
		for _, t := range cur {
			if t.ID != id {
				out = append(out, t)
			}
		}
		return out
	})
	s.log.WithField("id", id).Debug("deleted")
	return nil
}

// UpdateTodo sets the completion flag of the item with id. Other items are
// left as they are; an unknown id changes nothing.
func (s *Store) UpdateTodo(id string, completed bool) error {
	if err := s.svc.UpdateTodo(id, completed); err != nil {
		return fmt.Errorf("update todo %s: %w", id, err)
	}
	s.todos.Update(func(cur []model.Todo) []model.Todo {
		out := make([]model.Todo, len(cur))
		for i, t := range cur {
			if t.ID == id {
				t.Completed = completed
			}
			out[i] = t
		}
		return out
	})
	s.log.WithFields(logrus.Fields{"id": id, "completed": completed}).Debug("updated")
	return nil
}

// Toggle flips the completion flag of the item with id.
func (s *Store) Toggle(id string) error {
	t, ok := s.find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.UpdateTodo(id, !t.Completed)
}

// UpdateFilter changes the derived view only. Values other than the three
// known filters are ignored.
func (s *Store) UpdateFilter(f model.Filter) {
	if !f.Valid() {
		s.log.WithField("filter", f).Warn("ignoring unknown filter")
		return
	}
	s.filter.Set(f)
	s.log.WithField("filter", f).Debug("filter changed")
}

// ------- reads -------

func (s *Store) Todos() []model.Todo { return slices.Clone(s.todos.Get()) }

func (s *Store) Loading() bool { return s.loading.Get() }

func (s *Store) Filter() model.Filter { return s.filter.Get() }

// FilteredTodos is the collection narrowed by the current filter.
func (s *Store) FilteredTodos() []model.Todo { return slices.Clone(s.filtered.Get()) }

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Todos:   s.Todos(),
		Loading: s.Loading(),
		Filter:  s.Filter(),
	}
}

// Subscribe calls fn with a fresh snapshot after every state change.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	cancels := []func(){
		s.todos.Subscribe(func([]model.Todo) { fn(s.Snapshot()) }),
		s.loading.Subscribe(func(bool) { fn(s.Snapshot()) }),
		s.filter.Subscribe(func(model.Filter) { fn(s.Snapshot()) }),
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

func (s *Store) find(id string) (model.Todo, bool) {
	for _, t := range s.todos.Get() {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}
