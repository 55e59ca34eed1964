package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

// ModuleService manages the module catalogue. Module names are the tags the
// permission gate compares, so every rename or delete drops the cached
// roles that carry the module.
type ModuleService struct {
	repo     ports.ModuleRepository
	roleRepo ports.RoleRepository
	roles    roleLookup
	log      zerolog.Logger
}

func NewModuleService(repo ports.ModuleRepository, roles ports.RoleRepository, cache ports.RoleCache, log zerolog.Logger) *ModuleService {
	return &ModuleService{
		repo:     repo,
		roleRepo: roles,
		roles:    roleLookup{repo: roles, cache: cache, log: log},
		log:      log,
	}
}

func (s *ModuleService) ListModules(ctx context.Context, filter ports.ListFilter) (*ports.ModuleList, error) {
	filter = normalizeFilter(filter)
	modules, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if modules == nil {
		modules = []*domain.Module{}
	}
	return &ports.ModuleList{Data: modules, Meta: listMeta(total, filter.PorPagina)}, nil
}

func (s *ModuleService) ComboModules(ctx context.Context) ([]*domain.Module, error) {
	return s.repo.ListAll(ctx)
}

func (s *ModuleService) GetModule(ctx context.Context, id string) (*domain.Module, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ModuleService) CreateModule(ctx context.Context, input ports.ModuleInput) (*domain.Module, error) {
	nombre, err := s.checkName(ctx, input.Nombre, "")
	if err != nil {
		return nil, err
	}

	module := &domain.Module{Nombre: nombre, Posicion: input.Posicion}
	if err := s.repo.Create(ctx, module); err != nil {
		s.log.Error().Err(err).Str("nombre", nombre).Msg("failed to create module")
		return nil, err
	}

	s.log.Info().Str("module_id", module.ID).Str("nombre", module.Nombre).Msg("module created")
	return module, nil
}

func (s *ModuleService) UpdateModule(ctx context.Context, id string, input ports.ModuleInput) (*domain.Module, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	nombre, err := s.checkName(ctx, input.Nombre, id)
	if err != nil {
		return nil, err
	}

	affected, err := s.roleRepo.IDsWithModule(ctx, id)
	if err != nil {
		return nil, err
	}

	module := &domain.Module{ID: id, Nombre: nombre, Posicion: input.Posicion}
	if err := s.repo.Update(ctx, module); err != nil {
		return nil, err
	}
	s.invalidateRoles(ctx, affected)

	s.log.Info().Str("module_id", id).Int("roles", len(affected)).Msg("module updated")
	return module, nil
}

// DeleteModule removes the module from every role before deleting it.
func (s *ModuleService) DeleteModule(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	affected, err := s.roleRepo.IDsWithModule(ctx, id)
	if err != nil {
		return err
	}
	if err := s.roleRepo.PullModule(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateRoles(ctx, affected)

	s.log.Info().Str("module_id", id).Int("roles", len(affected)).Msg("module deleted")
	return nil
}

func (s *ModuleService) checkName(ctx context.Context, raw, excludeID string) (string, error) {
	nombre := strings.TrimSpace(raw)
	if nombre == "" {
		return "", domain.ErrModuleNameRequired
	}
	dup, err := s.repo.ExistsByNombre(ctx, nombre, excludeID)
	if err != nil {
		return "", err
	}
	if dup {
		return "", domain.ErrDuplicateModule
	}
	return nombre, nil
}

func (s *ModuleService) invalidateRoles(ctx context.Context, ids []string) {
	for _, id := range ids {
		s.roles.invalidate(ctx, id)
	}
}
