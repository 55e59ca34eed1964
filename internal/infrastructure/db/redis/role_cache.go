package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
)

const defaultRoleTTL = time.Minute

// RoleCache keeps roles with their modules for a short time so the
// permission check does not hit MongoDB on every request.
// Key format: role:<role_id>
type RoleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoleCache creates a RoleCache wrapping the given Redis client.
func NewRoleCache(client *redis.Client, ttl time.Duration) *RoleCache {
	if ttl <= 0 {
		ttl = defaultRoleTTL
	}
	return &RoleCache{client: client, ttl: ttl}
}

// Get returns the cached role, reporting false on a miss.
func (c *RoleCache) Get(ctx context.Context, id string) (*domain.Role, bool, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("role cache get: %w", err)
	}

	var role domain.Role
	if err := json.Unmarshal(raw, &role); err != nil {
		return nil, false, fmt.Errorf("role cache decode: %w", err)
	}
	return &role, true, nil
}

// Set stores role until the TTL expires.
func (c *RoleCache) Set(ctx context.Context, role *domain.Role) error {
	raw, err := json.Marshal(role)
	if err != nil {
		return fmt.Errorf("role cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(role.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached role.
func (c *RoleCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *RoleCache) key(id string) string {
	return "role:" + id
}
