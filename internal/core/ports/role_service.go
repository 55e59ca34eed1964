package ports

import (
	"context"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
)

// RoleInput carries the writable fields of a role.
type RoleInput struct {
	Nombre    string
	Posicion  int
	ModuloIDs []string
}

// ListMeta describes the pagination of a list result.
type ListMeta struct {
	LastPage int   `json:"lastPage"`
	Total    int64 `json:"total"`
}

// RoleList is a page of roles.
type RoleList struct {
	Data []*domain.Role `json:"data"`
	Meta ListMeta       `json:"meta"`
}

// ModuleList is a page of modules.
type ModuleList struct {
	Data []*domain.Module `json:"data"`
	Meta ListMeta         `json:"meta"`
}

type RoleService interface {
	ListRoles(ctx context.Context, filter ListFilter) (*RoleList, error)
	ComboRoles(ctx context.Context) ([]*domain.Role, error)
	GetRole(ctx context.Context, id string) (*domain.Role, error)
	CreateRole(ctx context.Context, input RoleInput) (*domain.Role, error)
	UpdateRole(ctx context.Context, id string, input RoleInput) (*domain.Role, error)
	DeleteRole(ctx context.Context, id string) error
}

// ModuleInput carries the writable fields of a module.
type ModuleInput struct {
	Nombre   string
	Posicion int
}

type ModuleService interface {
	ListModules(ctx context.Context, filter ListFilter) (*ModuleList, error)
	ComboModules(ctx context.Context) ([]*domain.Module, error)
	GetModule(ctx context.Context, id string) (*domain.Module, error)
	CreateModule(ctx context.Context, input ModuleInput) (*domain.Module, error)
	UpdateModule(ctx context.Context, id string, input ModuleInput) (*domain.Module, error)
	DeleteModule(ctx context.Context, id string) error
}
