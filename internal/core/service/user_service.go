package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

// UserService administers user accounts: their role, their active flag and
// their password. Deactivating a user ends its session.
type UserService struct {
	users ports.UserRepository
	roles roleLookup
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, cache ports.RoleCache, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		roles: roleLookup{repo: roles, cache: cache, log: log},
		log:   log,
	}
}

func (s *UserService) ListUsers(ctx context.Context, filter ports.ListFilter) (*ports.UserList, error) {
	filter = normalizeFilter(filter)
	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return &ports.UserList{Data: users, Meta: listMeta(total, filter.PorPagina)}, nil
}

// GetUser returns the user with its role. A dangling role reference yields
// a profile without role.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.Profile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := &domain.Profile{User: *user}
	if user.RolID == "" {
		return profile, nil
	}

	role, err := s.roles.find(ctx, user.RolID)
	switch {
	case errors.Is(err, domain.ErrRoleNotFound):
	case err != nil:
		return nil, err
	default:
		profile.Rol = role
	}
	return profile, nil
}

func (s *UserService) CreateUser(ctx context.Context, input ports.UserInput) (*domain.User, error) {
	nombre, err := s.checkInput(ctx, input, "")
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Nombre: nombre, PasswordHash: hash, Activo: input.Activo, RolID: input.RolID}
	if err := s.users.Create(ctx, user); err != nil {
		s.log.Error().Err(err).Str("nombre", nombre).Msg("failed to create user")
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("nombre", user.Nombre).Msg("user created")
	return user, nil
}

// UpdateUser replaces the name, role and active flag of a user, and its
// password when one is given.
func (s *UserService) UpdateUser(ctx context.Context, id string, input ports.UserInput) (*domain.User, error) {
	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	nombre, err := s.checkInput(ctx, input, id)
	if err != nil {
		return nil, err
	}

	user := &domain.User{ID: id, Nombre: nombre, Activo: input.Activo, RolID: input.RolID, CreatedAt: existing.CreatedAt}
	if strings.TrimSpace(input.Password) != "" {
		if user.PasswordHash, err = hashPassword(input.Password); err != nil {
			return nil, err
		}
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if !user.Activo && existing.CurrentToken != "" {
		if err := s.users.SetCurrentToken(ctx, id, ""); err != nil {
			return nil, err
		}
		s.log.Info().Str("user_id", id).Msg("session of deactivated user finished")
	}

	s.log.Info().Str("user_id", id).Msg("user updated")
	return user, nil
}

// DeleteUser ends the user's session and removes the account.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CurrentToken != "" {
		if err := s.users.SetCurrentToken(ctx, id, ""); err != nil {
			return err
		}
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// checkInput validates the name and role of input and returns the trimmed
// name.
func (s *UserService) checkInput(ctx context.Context, input ports.UserInput, excludeID string) (string, error) {
	nombre := strings.TrimSpace(input.Nombre)
	if nombre == "" {
		return "", domain.NewFieldError("validation failed", "nombre", "nombre is required")
	}

	if input.RolID == "" {
		return "", domain.ErrUnknownRole
	}
	if _, err := s.roles.find(ctx, input.RolID); err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return "", domain.ErrUnknownRole
		}
		return "", err
	}

	dup, err := s.users.ExistsByNombre(ctx, nombre, excludeID)
	if err != nil {
		return "", err
	}
	if dup {
		return "", domain.ErrDuplicateUser
	}
	return nombre, nil
}
