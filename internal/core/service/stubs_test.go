package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users       map[string]*domain.User // by id
	sessionHits int
	nextID      int
	findErr     error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) FindBySession(_ context.Context, id, nombre, token string) (*domain.User, error) {
	r.sessionHits++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok || !u.Activo || u.Nombre != nombre || u.CurrentToken == "" || u.CurrentToken != token {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByNombre(_ context.Context, nombre string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Nombre == nombre {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetCurrentToken(_ context.Context, id, token string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.CurrentToken = token
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Nombre), strings.ToLower(f.Buscar)) {
			clone := *u
			matched = append(matched, &clone)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *stubUserRepo) ExistsByNombre(_ context.Context, nombre, excludeID string) (bool, error) {
	for id, u := range r.users {
		if id != excludeID && strings.EqualFold(u.Nombre, nombre) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = fmt.Sprintf("user-new-%d", r.nextID)
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	u, ok := r.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Nombre, u.Activo, u.RolID = user.Nombre, user.Activo, user.RolID
	if user.PasswordHash != "" {
		u.PasswordHash = user.PasswordHash
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubRoleRepo struct {
	roles   map[string]*domain.Role
	finds   int
	nextID  int
	findErr error
}

func newStubRoleRepo(roles ...*domain.Role) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]*domain.Role)}
	for _, role := range roles {
		clone := *role
		r.roles[role.ID] = &clone
	}
	return r
}

func (r *stubRoleRepo) FindWithModules(_ context.Context, id string) (*domain.Role, error) {
	r.finds++
	if r.findErr != nil {
		return nil, r.findErr
	}
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *role
	return &clone, nil
}

func (r *stubRoleRepo) List(_ context.Context, f ports.ListFilter) ([]*domain.Role, int64, error) {
	var matched []*domain.Role
	for _, role := range r.roles {
		if strings.Contains(strings.ToLower(role.Nombre), strings.ToLower(f.Buscar)) {
			clone := *role
			matched = append(matched, &clone)
		}
	}
	total := int64(len(matched))
	skip := f.Skip()
	if skip > total {
		return []*domain.Role{}, total, nil
	}
	end := skip + int64(f.PorPagina)
	if end > total {
		end = total
	}
	return matched[skip:end], total, nil
}

func (r *stubRoleRepo) ListAll(_ context.Context) ([]*domain.Role, error) {
	out := make([]*domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		clone := *role
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubRoleRepo) ExistsByNombre(_ context.Context, nombre, excludeID string) (bool, error) {
	for id, role := range r.roles {
		if id != excludeID && strings.EqualFold(role.Nombre, nombre) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) error {
	r.nextID++
	role.ID = fmt.Sprintf("role-new-%d", r.nextID)
	clone := *role
	r.roles[role.ID] = &clone
	return nil
}

func (r *stubRoleRepo) Update(_ context.Context, role *domain.Role) error {
	if _, ok := r.roles[role.ID]; !ok {
		return domain.ErrRoleNotFound
	}
	clone := *role
	r.roles[role.ID] = &clone
	return nil
}

func (r *stubRoleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.roles[id]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.roles, id)
	return nil
}

func (r *stubRoleRepo) IDsWithModule(_ context.Context, moduleID string) ([]string, error) {
	var ids []string
	for id, role := range r.roles {
		for _, m := range role.Modulos {
			if m.ID == moduleID {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids, nil
}

func (r *stubRoleRepo) PullModule(_ context.Context, moduleID string) error {
	for _, role := range r.roles {
		kept := role.Modulos[:0:0]
		for _, m := range role.Modulos {
			if m.ID != moduleID {
				kept = append(kept, m)
			}
		}
		role.Modulos = kept
	}
	return nil
}

type stubModuleRepo struct {
	modules []domain.Module
	nextID  int
}

func (r *stubModuleRepo) FindByID(_ context.Context, id string) (*domain.Module, error) {
	for _, m := range r.modules {
		if m.ID == id {
			clone := m
			return &clone, nil
		}
	}
	return nil, domain.ErrModuleNotFound
}

func (r *stubModuleRepo) ExistsByNombre(_ context.Context, nombre, excludeID string) (bool, error) {
	for _, m := range r.modules {
		if m.ID != excludeID && strings.EqualFold(m.Nombre, nombre) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubModuleRepo) Create(_ context.Context, module *domain.Module) error {
	r.nextID++
	module.ID = fmt.Sprintf("module-new-%d", r.nextID)
	r.modules = append(r.modules, *module)
	return nil
}

func (r *stubModuleRepo) Update(_ context.Context, module *domain.Module) error {
	for i := range r.modules {
		if r.modules[i].ID == module.ID {
			r.modules[i] = *module
			return nil
		}
	}
	return domain.ErrModuleNotFound
}

func (r *stubModuleRepo) Delete(_ context.Context, id string) error {
	for i := range r.modules {
		if r.modules[i].ID == id {
			r.modules = append(r.modules[:i], r.modules[i+1:]...)
			return nil
		}
	}
	return domain.ErrModuleNotFound
}

func (r *stubModuleRepo) List(_ context.Context, f ports.ListFilter) ([]*domain.Module, int64, error) {
	out := make([]*domain.Module, 0, len(r.modules))
	for i := range r.modules {
		m := r.modules[i]
		out = append(out, &m)
	}
	return out, int64(len(out)), nil
}

func (r *stubModuleRepo) ListAll(ctx context.Context) ([]*domain.Module, error) {
	out, _, err := r.List(ctx, ports.ListFilter{})
	return out, err
}

func (r *stubModuleRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Module, error) {
	var out []domain.Module
	for _, m := range r.modules {
		for _, id := range ids {
			if m.ID == id {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

type stubRoleCache struct {
	roles       map[string]*domain.Role
	invalidated []string
	getErr      error
}

func newStubRoleCache() *stubRoleCache {
	return &stubRoleCache{roles: make(map[string]*domain.Role)}
}

func (c *stubRoleCache) Get(_ context.Context, id string) (*domain.Role, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	role, ok := c.roles[id]
	if !ok {
		return nil, false, nil
	}
	clone := *role
	return &clone, true, nil
}

func (c *stubRoleCache) Set(_ context.Context, role *domain.Role) error {
	clone := *role
	c.roles[role.ID] = &clone
	return nil
}

func (c *stubRoleCache) Invalidate(_ context.Context, id string) error {
	c.invalidated = append(c.invalidated, id)
	delete(c.roles, id)
	return nil
}

var errStoreDown = errors.New("store unavailable")
