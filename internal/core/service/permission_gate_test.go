package service

import (
	"context"
	"errors"
	"testing"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
)

func secretaria() *domain.Role {
	return &domain.Role{
		ID:     "r1",
		Nombre: "SECRETARIA",
		Modulos: []domain.Module{
			{ID: "m1", Nombre: "A"},
			{ID: "m2", Nombre: "B"},
		},
	}
}

func TestAuthorize_AnyOfSemantics(t *testing.T) {
	gate := NewPermissionGate(newStubRoleRepo(secretaria()), nil, discardLogger)
	user := activeUser()

	if err := gate.Authorize(context.Background(), user, "C", "D"); !errors.Is(err, domain.ErrInsufficientPermission) {
		t.Fatalf("expected ErrInsufficientPermission, got %v", err)
	}
	if err := gate.Authorize(context.Background(), user, "B", "D"); err != nil {
		t.Fatalf("expected access with one matching module, got %v", err)
	}
}

func TestAuthorize_NoRole(t *testing.T) {
	gate := NewPermissionGate(newStubRoleRepo(secretaria()), nil, discardLogger)

	dangling := activeUser()
	dangling.RolID = "missing"
	if err := gate.Authorize(context.Background(), dangling, "A"); !errors.Is(err, domain.ErrNoRole) {
		t.Fatalf("expected ErrNoRole for dangling role, got %v", err)
	}

	noRole := activeUser()
	noRole.RolID = ""
	if err := gate.Authorize(context.Background(), noRole, "A"); !errors.Is(err, domain.ErrNoRole) {
		t.Fatalf("expected ErrNoRole for empty role id, got %v", err)
	}

	if err := gate.Authorize(context.Background(), nil, "A"); !errors.Is(err, domain.ErrNoRole) {
		t.Fatalf("expected ErrNoRole for absent user, got %v", err)
	}
}

func TestAuthorize_SuperRoleIsNotExempt(t *testing.T) {
	admin := &domain.Role{ID: "r1", Nombre: domain.RoleSuperAdmin, Modulos: []domain.Module{{Nombre: "PARAMETROS"}}}
	gate := NewPermissionGate(newStubRoleRepo(admin), nil, discardLogger)

	if err := gate.Authorize(context.Background(), activeUser(), "REPORTES"); !errors.Is(err, domain.ErrInsufficientPermission) {
		t.Fatalf("expected ErrInsufficientPermission, got %v", err)
	}
}

func TestAuthorize_StoreFailure(t *testing.T) {
	repo := newStubRoleRepo(secretaria())
	repo.findErr = errStoreDown
	gate := NewPermissionGate(repo, nil, discardLogger)

	err := gate.Authorize(context.Background(), activeUser(), "A")
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAuthorize_RefetchesWithoutCache(t *testing.T) {
	repo := newStubRoleRepo(secretaria())
	gate := NewPermissionGate(repo, nil, discardLogger)

	for i := 0; i < 2; i++ {
		if err := gate.Authorize(context.Background(), activeUser(), "A"); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}
	if repo.finds != 2 {
		t.Fatalf("expected one role lookup per request, got %d", repo.finds)
	}
}

func TestAuthorize_UsesCache(t *testing.T) {
	repo := newStubRoleRepo(secretaria())
	cache := newStubRoleCache()
	gate := NewPermissionGate(repo, cache, discardLogger)

	for i := 0; i < 3; i++ {
		if err := gate.Authorize(context.Background(), activeUser(), "A"); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}
	if repo.finds != 1 {
		t.Fatalf("expected a single store lookup, got %d", repo.finds)
	}
}

func TestAuthorize_CacheFailureFallsBackToStore(t *testing.T) {
	repo := newStubRoleRepo(secretaria())
	cache := newStubRoleCache()
	cache.getErr = errors.New("redis down")
	gate := NewPermissionGate(repo, cache, discardLogger)

	if err := gate.Authorize(context.Background(), activeUser(), "B"); err != nil {
		t.Fatalf("expected fallback to store, got %v", err)
	}
	if repo.finds != 1 {
		t.Fatalf("expected store lookup, got %d", repo.finds)
	}
}
