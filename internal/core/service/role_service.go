package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

// RoleService manages roles and keeps the role cache coherent with every
// mutation.
type RoleService struct {
	repo    ports.RoleRepository
	modules ports.ModuleRepository
	roles   roleLookup
	log     zerolog.Logger
}

func NewRoleService(repo ports.RoleRepository, modules ports.ModuleRepository, cache ports.RoleCache, log zerolog.Logger) *RoleService {
	return &RoleService{
		repo:    repo,
		modules: modules,
		roles:   roleLookup{repo: repo, cache: cache, log: log},
		log:     log,
	}
}

func (s *RoleService) ListRoles(ctx context.Context, filter ports.ListFilter) (*ports.RoleList, error) {
	filter = normalizeFilter(filter)
	roles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []*domain.Role{}
	}
	return &ports.RoleList{Data: roles, Meta: listMeta(total, filter.PorPagina)}, nil
}

// ComboRoles returns every role without pagination, for selectors.
func (s *RoleService) ComboRoles(ctx context.Context) ([]*domain.Role, error) {
	return s.repo.ListAll(ctx)
}

func (s *RoleService) GetRole(ctx context.Context, id string) (*domain.Role, error) {
	return s.repo.FindWithModules(ctx, id)
}

func (s *RoleService) CreateRole(ctx context.Context, input ports.RoleInput) (*domain.Role, error) {
	nombre := strings.TrimSpace(input.Nombre)
	if nombre == "" {
		return nil, domain.ErrRoleNameRequired
	}
	modules, err := s.resolveModules(ctx, input.ModuloIDs)
	if err != nil {
		return nil, err
	}

	dup, err := s.repo.ExistsByNombre(ctx, nombre, "")
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, domain.ErrDuplicateRole
	}

	role := &domain.Role{Nombre: nombre, Posicion: input.Posicion, Modulos: modules}
	if err := s.repo.Create(ctx, role); err != nil {
		s.log.Error().Err(err).Str("nombre", nombre).Msg("failed to create role")
		return nil, err
	}

	s.log.Info().Str("role_id", role.ID).Str("nombre", role.Nombre).Msg("role created")
	return role, nil
}

// UpdateRole replaces the name, position and modules of a role. The
// administrator role keeps its name.
func (s *RoleService) UpdateRole(ctx context.Context, id string, input ports.RoleInput) (*domain.Role, error) {
	existing, err := s.repo.FindWithModules(ctx, id)
	if err != nil {
		return nil, err
	}

	nombre := strings.TrimSpace(input.Nombre)
	if existing.IsSuperAdmin() {
		nombre = existing.Nombre
	}
	if nombre == "" {
		return nil, domain.ErrRoleNameRequired
	}

	modules, err := s.resolveModules(ctx, input.ModuloIDs)
	if err != nil {
		return nil, err
	}

	dup, err := s.repo.ExistsByNombre(ctx, nombre, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, domain.ErrDuplicateRole
	}

	role := &domain.Role{ID: id, Nombre: nombre, Posicion: input.Posicion, Modulos: modules}
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	s.roles.invalidate(ctx, id)

	s.log.Info().Str("role_id", id).Msg("role updated")
	return role, nil
}

func (s *RoleService) DeleteRole(ctx context.Context, id string) error {
	existing, err := s.repo.FindWithModules(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsSuperAdmin() {
		return domain.ErrProtectedRole
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.roles.invalidate(ctx, id)

	s.log.Info().Str("role_id", id).Msg("role deleted")
	return nil
}

func (s *RoleService) resolveModules(ctx context.Context, ids []string) ([]domain.Module, error) {
	if len(ids) == 0 {
		return nil, domain.ErrRoleWithoutModule
	}
	modules, err := s.modules.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(modules) != len(uniqueIDs(ids)) {
		return nil, domain.ErrUnknownModule
	}
	return modules, nil
}

func uniqueIDs(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
