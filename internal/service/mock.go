package service

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/todos/internal/logging"
	"github.com/Makepad-fr/todos/internal/model"
)

const DefaultDelay = 500 * time.Millisecond

// Mock stands in for a remote backend.
//
// Only GetTodos reads the backing list. AddTodo, DeleteTodo and UpdateTodo
// acknowledge the call without touching it: keeping the list in sync is the
// caller's job, and a reload always returns the seed again.
type Mock struct {
	todos []model.Todo
	delay time.Duration
	newID func() string
	sleep func(time.Duration)
	log   *logrus.Entry
}

type Option func(*Mock)

func WithDelay(d time.Duration) Option { return func(m *Mock) { m.delay = d } }

// WithSeed replaces the default collection. The slice is copied.
func WithSeed(todos []model.Todo) Option {
	return func(m *Mock) { m.todos = slices.Clone(todos) }
}

func WithIDGenerator(fn func() string) Option { return func(m *Mock) { m.newID = fn } }

// WithSleep swaps the function used to wait out the delay (tests pass a no-op).
func WithSleep(fn func(time.Duration)) Option { return func(m *Mock) { m.sleep = fn } }

func WithLogger(l *logrus.Entry) Option { return func(m *Mock) { m.log = l } }

func NewMock(opts ...Option) *Mock {
	m := &Mock{
		todos: DefaultTodos(),
		delay: DefaultDelay,
		newID: uuid.NewString,
		sleep: time.Sleep,
	}
	for _, o := range opts {
		o(m)
	}
	if m.log == nil {
		m.log = logging.NewLogger("service")
	}
	return m
}

func (m *Mock) GetTodos() ([]model.Todo, error) {
	m.wait()
	out := slices.Clone(m.todos)
	if out == nil {
		out = []model.Todo{}
	}
	m.log.WithField("count", len(out)).Debug("get todos")
	return out, nil
}

func (m *Mock) AddTodo(t model.NewTodo) (model.Todo, error) {
	m.wait()
	created := model.Todo{ID: m.newID(), Title: t.Title, Completed: t.Completed}
	m.log.WithFields(logrus.Fields{"id": created.ID, "title": created.Title}).Debug("add todo")
	return created, nil
}

func (m *Mock) DeleteTodo(id string) error {
	m.wait()
	m.log.WithField("id", id).Debug("delete todo")
	return nil
}

func (m *Mock) UpdateTodo(id string, completed bool) error {
	m.wait()
	m.log.WithFields(logrus.Fields{"id": id, "completed": completed}).Debug("update todo")
	return nil
}

func (m *Mock) wait() {
	if m.delay > 0 {
		m.sleep(m.delay)
	}
}
