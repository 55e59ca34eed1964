package ports

import (
	"context"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
)

// ListFilter carries the query parameters shared by the catalogue listings.
type ListFilter struct {
	Buscar    string // case-insensitive substring on nombre
	Pagina    int    // 1-based
	PorPagina int
}

// Skip is the number of rows before the requested page.
func (f ListFilter) Skip() int64 {
	if f.Pagina < 1 || f.PorPagina < 1 {
		return 0
	}
	return int64(f.Pagina-1) * int64(f.PorPagina)
}

// RoleRepository defines persistence operations for roles.
type RoleRepository interface {
	// FindWithModules returns the role with its modules populated, or
	// domain.ErrRoleNotFound.
	FindWithModules(ctx context.Context, id string) (*domain.Role, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Role, int64, error)
	ListAll(ctx context.Context) ([]*domain.Role, error)
	// ExistsByNombre reports whether another role (excluding excludeID) has
	// the same name, compared case-insensitively.
	ExistsByNombre(ctx context.Context, nombre, excludeID string) (bool, error)
	Create(ctx context.Context, role *domain.Role) error
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id string) error
	// IDsWithModule returns the ids of the roles that own moduleID.
	IDsWithModule(ctx context.Context, moduleID string) ([]string, error)
	// PullModule removes moduleID from every role.
	PullModule(ctx context.Context, moduleID string) error
}

// ModuleRepository defines persistence operations on the module catalogue.
type ModuleRepository interface {
	// FindByID returns the module or domain.ErrModuleNotFound.
	FindByID(ctx context.Context, id string) (*domain.Module, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Module, int64, error)
	ListAll(ctx context.Context) ([]*domain.Module, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Module, error)
	// ExistsByNombre reports whether another module (excluding excludeID)
	// has the same name, compared case-insensitively.
	ExistsByNombre(ctx context.Context, nombre, excludeID string) (bool, error)
	Create(ctx context.Context, module *domain.Module) error
	Update(ctx context.Context, module *domain.Module) error
	Delete(ctx context.Context, id string) error
}

// RoleCache stores roles with their modules keyed by role id.
type RoleCache interface {
	Get(ctx context.Context, id string) (*domain.Role, bool, error)
	Set(ctx context.Context, role *domain.Role) error
	Invalidate(ctx context.Context, id string) error
}
