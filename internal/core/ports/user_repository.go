package ports

import (
	"context"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
)

// UserRepository defines persistence operations on user accounts.
type UserRepository interface {
	// FindBySession returns the active user whose id, nombre and current token
	// all equal the given values, or domain.ErrUserNotFound.
	FindBySession(ctx context.Context, id, nombre, token string) (*domain.User, error)
	FindByNombre(ctx context.Context, nombre string) (*domain.User, error)
	// SetCurrentToken overwrites the user's session token. An empty token
	// clears the session.
	SetCurrentToken(ctx context.Context, id, token string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// FindByID returns the user or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.User, int64, error)
	// ExistsByNombre reports whether another user (excluding excludeID) has
	// the same name, compared case-insensitively.
	ExistsByNombre(ctx context.Context, nombre, excludeID string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
	// Update writes nombre, activo and rol_id, and the password hash when it
	// is not empty.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
