package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todos/internal/model"
	"github.com/Makepad-fr/todos/internal/service"
)

// fakeService records calls and can be told to fail.
type fakeService struct {
	mu      sync.Mutex
	todos   []model.Todo
	err     error
	nextID  int
	added   []model.NewTodo
	deleted []string
	updated map[string]bool
}

func (f *fakeService) GetTodos() ([]model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Todo(nil), f.todos...), nil
}

func (f *fakeService) AddTodo(t model.NewTodo) (model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return model.Todo{}, f.err
	}
	f.nextID++
	f.added = append(f.added, t)
	return model.Todo{ID: fmt.Sprintf("new-%d", f.nextID), Title: t.Title, Completed: t.Completed}, nil
}

func (f *fakeService) DeleteTodo(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeService) UpdateTodo(id string, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.updated == nil {
		f.updated = map[string]bool{}
	}
	f.updated[id] = completed
	return nil
}

var sample = []model.Todo{
	{ID: "1", Title: "Learn Angular", Completed: false},
	{ID: "2", Title: "Build Todo App", Completed: true},
	{ID: "3", Title: "Write Tests", Completed: false},
}

func loaded(t *testing.T, todos []model.Todo) (*Store, *fakeService) {
	t.Helper()
	svc := &fakeService{todos: todos}
	s := New(svc)
	require.NoError(t, s.LoadAll())
	return s, svc
}

func TestNewStartsEmpty(t *testing.T) {
	s := New(&fakeService{})
	snap := s.Snapshot()
	assert.Empty(t, snap.Todos)
	assert.False(t, snap.Loading)
	assert.Equal(t, model.FilterAll, snap.Filter)
	assert.Empty(t, s.FilteredTodos())
}

func TestWithFilter(t *testing.T) {
	assert.Equal(t, model.FilterCompleted, New(&fakeService{}, WithFilter(model.FilterCompleted)).Filter())
	assert.Equal(t, model.FilterAll, New(&fakeService{}, WithFilter("bogus")).Filter())
}

func TestLoadAllPartitions(t *testing.T) {
	s, _ := loaded(t, sample)

	n := len(sample)
	_, p := model.Stats(sample)

	assert.Len(t, s.FilteredTodos(), n)
	s.UpdateFilter(model.FilterPending)
	assert.Len(t, s.FilteredTodos(), p)
	s.UpdateFilter(model.FilterCompleted)
	assert.Len(t, s.FilteredTodos(), n-p)
}

func TestLoadAllSetsLoadingAroundFetch(t *testing.T) {
	svc := &fakeService{todos: sample}
	s := New(svc)

	var states []bool
	cancel := s.Subscribe(func(snap Snapshot) { states = append(states, snap.Loading) })
	defer cancel()

	require.NoError(t, s.LoadAll())
	require.NotEmpty(t, states)
	assert.True(t, states[0], "loading must be raised before the fetch")
	assert.False(t, states[len(states)-1])
	assert.False(t, s.Loading())
}

func TestLoadAllWithMockService(t *testing.T) {
	var slept time.Duration
	svc := service.NewMock(service.WithSleep(func(d time.Duration) { slept += d }))
	s := New(svc)

	require.NoError(t, s.LoadAll())
	assert.Len(t, s.Todos(), 8)
	assert.Equal(t, service.DefaultDelay, slept)
}

func TestLoadAllError(t *testing.T) {
	boom := errors.New("backend down")
	s, svc := loaded(t, sample)
	svc.err = boom

	err := s.LoadAll()
	require.ErrorIs(t, err, boom)
	assert.False(t, s.Loading())
	assert.Len(t, s.Todos(), len(sample), "a failed load keeps the old collection")
}

func TestAddAppendsPendingItem(t *testing.T) {
	s, svc := loaded(t, sample)

	require.NoError(t, s.Add("X"))

	todos := s.Todos()
	require.Len(t, todos, len(sample)+1)
	last := todos[len(todos)-1]
	assert.Equal(t, "X", last.Title)
	assert.False(t, last.Completed)
	assert.Equal(t, []model.NewTodo{{Title: "X", Completed: false}}, svc.added)
	assert.False(t, s.Loading(), "add does not engage the loading flag")
}

func TestConcurrentAddsBothLand(t *testing.T) {
	s, _ := loaded(t, sample)

	var wg sync.WaitGroup
	for _, title := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Add(title))
		}()
	}
	wg.Wait()

	todos := s.Todos()
	assert.Len(t, todos, len(sample)+4)
	ids := map[string]bool{}
	for _, td := range todos {
		ids[td.ID] = true
	}
	assert.Len(t, ids, len(todos), "ids must stay unique")
}

func TestToggleChangesOnlyThatItem(t *testing.T) {
	s, svc := loaded(t, sample)

	require.NoError(t, s.Toggle("1"))

	want := []model.Todo{
		{ID: "1", Title: "Learn Angular", Completed: true},
		sample[1],
		sample[2],
	}
	if diff := cmp.Diff(want, s.Todos()); diff != "" {
		t.Errorf("after toggle (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string]bool{"1": true}, svc.updated)

	require.NoError(t, s.Toggle("1"))
	assert.False(t, s.Todos()[0].Completed)
}

func TestToggleUnknownID(t *testing.T) {
	s, svc := loaded(t, sample)
	err := s.Toggle("nope")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, svc.updated, "service must not be called for an unknown id")
}

func TestUpdateTodoUnknownIDLeavesCollection(t *testing.T) {
	s, _ := loaded(t, sample)
	require.NoError(t, s.UpdateTodo("nope", true))
	if diff := cmp.Diff(sample, s.Todos()); diff != "" {
		t.Errorf("collection changed (-want +got):\n%s", diff)
	}
}

func TestDeleteTodo(t *testing.T) {
	s, svc := loaded(t, sample)

	require.NoError(t, s.DeleteTodo("2"))
	todos := s.Todos()
	assert.Len(t, todos, len(sample)-1)
	for _, td := range todos {
		assert.NotEqual(t, "2", td.ID)
	}
	assert.Equal(t, []string{"2"}, svc.deleted)

	require.NoError(t, s.DeleteTodo("missing"))
	assert.Len(t, s.Todos(), len(sample)-1)
}

func TestOperationErrorsLeaveStateAlone(t *testing.T) {
	boom := errors.New("nope")
	s, svc := loaded(t, sample)
	svc.err = boom

	require.ErrorIs(t, s.Add("X"), boom)
	require.ErrorIs(t, s.DeleteTodo("1"), boom)
	require.ErrorIs(t, s.UpdateTodo("1", true), boom)
	require.ErrorIs(t, s.Toggle("1"), boom)

	if diff := cmp.Diff(sample, s.Todos()); diff != "" {
		t.Errorf("collection changed (-want +got):\n%s", diff)
	}
}

func TestFilterNeverMutatesCollection(t *testing.T) {
	s, _ := loaded(t, sample)
	before := s.Todos()

	for _, f := range model.Filters() {
		s.UpdateFilter(f)
		assert.Equal(t, f, s.Filter())
		if diff := cmp.Diff(before, s.Todos()); diff != "" {
			t.Errorf("filter %s changed collection (-want +got):\n%s", f, diff)
		}
	}

	s.UpdateFilter("bogus")
	assert.Equal(t, model.FilterCompleted, s.Filter())
}

func TestDerivedViewExample(t *testing.T) {
	s, _ := loaded(t, []model.Todo{
		{ID: "1", Title: "A", Completed: false},
		{ID: "2", Title: "B", Completed: true},
	})

	s.UpdateFilter(model.FilterPending)
	assert.Equal(t, []model.Todo{{ID: "1", Title: "A", Completed: false}}, s.FilteredTodos())

	require.NoError(t, s.UpdateTodo("1", true))
	assert.Empty(t, s.FilteredTodos())
	assert.Equal(t, model.FilterPending, s.Filter())
}

func TestReadsReturnCopies(t *testing.T) {
	s, _ := loaded(t, sample)

	todos := s.Todos()
	todos[0].Title = "changed"
	view := s.FilteredTodos()
	view[0].Title = "changed too"

	assert.Equal(t, "Learn Angular", s.Todos()[0].Title)
	assert.Equal(t, "Learn Angular", s.FilteredTodos()[0].Title)
}

func TestSubscribeCancel(t *testing.T) {
	s, _ := loaded(t, sample)
	calls := 0
	cancel := s.Subscribe(func(Snapshot) { calls++ })

	s.UpdateFilter(model.FilterPending)
	cancel()
	s.UpdateFilter(model.FilterAll)

	assert.Equal(t, 1, calls)
}
