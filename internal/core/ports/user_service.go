package ports

import (
	"context"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
)

// UserInput carries the writable fields of a user account. An empty
// Password on update keeps the current one.
type UserInput struct {
	Nombre   string
	Password string
	Activo   bool
	RolID    string
}

// UserList is a page of users.
type UserList struct {
	Data []*domain.User `json:"data"`
	Meta ListMeta       `json:"meta"`
}

type UserService interface {
	ListUsers(ctx context.Context, filter ListFilter) (*UserList, error)
	GetUser(ctx context.Context, id string) (*domain.Profile, error)
	CreateUser(ctx context.Context, input UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, input UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
