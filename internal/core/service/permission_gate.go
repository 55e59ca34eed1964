package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

// PermissionGate authorizes a user when its role owns at least one of the
// modules a route requires. No role is exempt; routes that should be open to
// the administrator alone simply do not install the gate.
type PermissionGate struct {
	roles roleLookup
}

// NewPermissionGate returns a gate reading roles from repo. cache may be nil.
func NewPermissionGate(repo ports.RoleRepository, cache ports.RoleCache, log zerolog.Logger) *PermissionGate {
	return &PermissionGate{roles: roleLookup{repo: repo, cache: cache, log: log}}
}

// Authorize returns nil when the role of user grants any of required,
// domain.ErrNoRole when the role cannot be resolved and
// domain.ErrInsufficientPermission otherwise.
func (g *PermissionGate) Authorize(ctx context.Context, user *domain.User, required ...string) error {
	if user == nil || user.RolID == "" {
		return domain.ErrNoRole
	}

	role, err := g.roles.find(ctx, user.RolID)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return domain.ErrNoRole
		}
		return fmt.Errorf("authorize: %w", err)
	}

	if !role.Grants(required) {
		return domain.ErrInsufficientPermission
	}
	return nil
}
