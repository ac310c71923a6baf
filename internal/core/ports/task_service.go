package ports

import (
	"context"
	"time"

	"github.com/taskwell/todo-system/internal/core/domain"
)

// CreateTaskInput carries the caller-supplied fields for a new task.
// Description, Priority and DueDate are optional; defaults per the data
// model (empty description, medium priority, no due date).
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
}

// TaskService defines the use-case operations for the task lifecycle.
type TaskService interface {
	List(ctx context.Context, ownerID, filter string) ([]*domain.Task, error)
	Create(ctx context.Context, ownerID string, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, upd TaskUpdate) (*domain.Task, error)
	SoftDelete(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	HardDelete(ctx context.Context, ownerID, taskID string) error
	Restore(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
}
