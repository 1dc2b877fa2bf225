package domain

import "time"

// Task represents a task in the tasks table. IDs are opaque UUID strings
// assigned at creation and never reused.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskFilter selects which tasks a listing returns
type TaskFilter int

const (
	FilterAll TaskFilter = iota
	FilterCompleted
	FilterPending
)

// TaskRepository defines the contract for task data access
type TaskRepository interface {
	Create(task *Task) error
	FindByID(id string) (*Task, error)
	FindAll(filter TaskFilter) ([]Task, error)
	// Update replaces title, description and completed; CreatedAt is immutable.
	Update(task *Task) error
	// Delete removes the task and returns it as it was before deletion.
	Delete(id string) (*Task, error)
}
