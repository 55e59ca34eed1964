package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

// AuthService implements login, logout and profile management. Login is the
// only place a session token is written.
type AuthService struct {
	users  ports.UserRepository
	roles  roleLookup
	tokens *TokenSigner
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, cache ports.RoleCache, tokens *TokenSigner, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		roles:  roleLookup{repo: roles, cache: cache, log: log},
		tokens: tokens,
		log:    log,
	}
}

// Login checks the credentials, issues a new token and stores it as the
// user's current session, which invalidates any previous token. Both fields
// are trimmed, as passwords are trimmed when stored.
func (s *AuthService) Login(ctx context.Context, nombre, password string) (string, *domain.Profile, error) {
	nombre = strings.TrimSpace(nombre)
	password = strings.TrimSpace(password)
	if nombre == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByNombre(ctx, nombre)
	if err != nil {
		return "", nil, err
	}
	if !user.Activo {
		return "", nil, domain.ErrUserInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	if err := s.users.SetCurrentToken(ctx, user.ID, token); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to store session token")
		return "", nil, err
	}
	user.CurrentToken = token

	profile, err := s.Profile(ctx, user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("nombre", user.Nombre).Msg("session started")
	return token, profile, nil
}

// Logout clears the user's current session.
func (s *AuthService) Logout(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrSessionNotFound
	}
	if err := s.users.SetCurrentToken(ctx, user.ID, ""); err != nil {
		return err
	}
	s.log.Info().Str("user_id", user.ID).Msg("session finished")
	return nil
}

// Profile returns user together with its role. A dangling role reference
// yields a profile without role.
func (s *AuthService) Profile(ctx context.Context, user *domain.User) (*domain.Profile, error) {
	if user == nil {
		return nil, domain.ErrSessionNotFound
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

// ChangePassword replaces the password of user. Users may only change their
// own password and must present the previous one.
func (s *AuthService) ChangePassword(ctx context.Context, user *domain.User, input ports.ChangePasswordInput) error {
	if user == nil || user.ID != input.TargetID {
		return domain.ErrForbidden
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(input.Previous))) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// hashPassword trims and bcrypt-hashes a new password.
func hashPassword(password string) (string, error) {
	password = strings.TrimSpace(password)
	if password == "" {
		return "", domain.NewFieldError("validation failed", "password", "password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
