package ports

import (
	"context"

	"github.com/taskwell/todo-system/internal/core/domain"
)

// AuthService covers account registration, credential verification and
// session token issuance.
type AuthService interface {
	// Register creates an account and returns a freshly issued token so the
	// caller is logged in immediately.
	Register(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// GetUser resolves the authenticated account for the "who am I" endpoint.
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	// Logout revokes an outstanding token until its encoded expiry elapses.
	Logout(ctx context.Context, token string) error
}
