package model

// Todo is the domain model for a todo entry.
type Todo struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// NewTodo is what the data service needs to create a Todo; the id is its job.
type NewTodo struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Stats counts completed and pending items.
func Stats(todos []Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
