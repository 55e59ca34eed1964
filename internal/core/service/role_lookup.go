package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

// roleLookup reads roles through an optional cache. Cache failures are
// logged and the repository is used instead.
type roleLookup struct {
	repo  ports.RoleRepository
	cache ports.RoleCache
	log   zerolog.Logger
}

func (l roleLookup) find(ctx context.Context, id string) (*domain.Role, error) {
	if l.cache != nil {
		role, ok, err := l.cache.Get(ctx, id)
		if err != nil {
			l.log.Warn().Err(err).Str("role_id", id).Msg("role cache read failed, using store")
		} else if ok {
			return role, nil
		}
	}

	role, err := l.repo.FindWithModules(ctx, id)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, role); err != nil {
			l.log.Warn().Err(err).Str("role_id", id).Msg("role cache write failed")
		}
	}
	return role, nil
}

func (l roleLookup) invalidate(ctx context.Context, id string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Invalidate(ctx, id); err != nil {
		l.log.Warn().Err(err).Str("role_id", id).Msg("role cache invalidation failed")
	}
}
