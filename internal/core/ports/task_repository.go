package ports

import (
	"context"
	"time"

	"github.com/taskwell/todo-system/internal/core/domain"
)

// TaskUpdate is the allow-listed set of mutable task fields. Nil pointers
// mean "leave unchanged". Identity fields (id, owner, createdAt) are not
// representable here and therefore can never be overwritten by a caller.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *domain.Priority
	DueDate     *time.Time
}

// TaskRepository defines persistence operations for tasks. Every operation
// is scoped by ownerID: tasks of other owners behave exactly like missing
// records (domain.ErrTaskNotFound).
type TaskRepository interface {
	// List returns the owner's tasks matching filter, newest first.
	List(ctx context.Context, ownerID string, filter domain.Filter) ([]*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// Update applies the non-nil fields of upd and refreshes updatedAt,
	// returning the task as persisted.
	Update(ctx context.Context, ownerID, taskID string, upd TaskUpdate, now time.Time) (*domain.Task, error)
	// SetDeleted flips the soft-delete flag. When deleted is false (restore)
	// the match additionally requires the task to be in the trash.
	SetDeleted(ctx context.Context, ownerID, taskID string, deleted bool, now time.Time) (*domain.Task, error)
	// HardDelete permanently removes the record. Irreversible.
	HardDelete(ctx context.Context, ownerID, taskID string) error
}
