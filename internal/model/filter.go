package model

import (
	"errors"
	"fmt"
)

// Filter selects which partition of the collection is visible.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Filters returns every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterPending, FilterCompleted}
}

// ParseFilter is case sensitive: "ALL" is not a filter.
func ParseFilter(s string) (Filter, error) {
	f := Filter(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q (want all, pending or completed)", ErrInvalidFilter, s)
	}
	return f, nil
}

func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterPending, FilterCompleted:
		return true
	}
	return false
}

func (f Filter) String() string { return string(f) }

// Next cycles all -> pending -> completed -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterPending
	case FilterPending:
		return FilterCompleted
	default:
		return FilterAll
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterPending:
		return "Pending"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

func (f Filter) Description() string {
	switch f {
	case FilterPending:
		return "Show pending todos only"
	case FilterCompleted:
		return "Show completed todos only"
	default:
		return "Show all todos"
	}
}

// Match reports whether t belongs to the partition selected by f.
func (f Filter) Match(t Todo) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the items of todos selected by f. The result never shares
// its backing array with todos.
func Apply(todos []Todo, f Filter) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
