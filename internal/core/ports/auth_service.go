package ports

import (
	"context"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
)

// TokenAuthenticator resolves an Authorization header to the user holding
// that session.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, authorization string) (*domain.User, error)
}

// PermissionGate decides whether a user's role grants any of the required
// modules.
type PermissionGate interface {
	Authorize(ctx context.Context, user *domain.User, required ...string) error
}

// ChangePasswordInput carries the fields of a password change request.
type ChangePasswordInput struct {
	TargetID string
	Previous string
	Password string
}

type AuthService interface {
	Login(ctx context.Context, nombre, password string) (string, *domain.Profile, error)
	Logout(ctx context.Context, user *domain.User) error
	Profile(ctx context.Context, user *domain.User) (*domain.Profile, error)
	ChangePassword(ctx context.Context, user *domain.User, input ChangePasswordInput) error
}
