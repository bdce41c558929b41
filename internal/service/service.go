// Package service is the data-access layer of the todo store. The only
// implementation is Mock, which answers from canned data after a fixed delay.
package service

import "github.com/Makepad-fr/todos/internal/model"

// Service is what the store calls. Every method blocks until its single
// result is available.
type Service interface {
	GetTodos() ([]model.Todo, error)
	AddTodo(t model.NewTodo) (model.Todo, error)
	DeleteTodo(id string) error
	UpdateTodo(id string, completed bool) error
}

// DefaultTodos is the seed collection served when no seed file is configured.
func DefaultTodos() []model.Todo {
	return []model.Todo{
		{ID: "1", Title: "Learn Angular"},
		{ID: "2", Title: "Learn NgRx"},
		{ID: "3", Title: "Build an app"},
		{ID: "4", Title: "Learn Git"},
		{ID: "5", Title: "Deploy the app"},
		{ID: "6", Title: "Manage server"},
		{ID: "7", Title: "Learn Signal Store"},
		{ID: "8", Title: "Host a presentation"},
	}
}
