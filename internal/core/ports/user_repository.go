package ports

import (
	"context"

	"github.com/taskwell/todo-system/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
// Email uniqueness is enforced by the store (unique index).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
