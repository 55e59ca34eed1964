package service

import (
	"context"
	"testing"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

func catalogue() *stubModuleRepo {
	return &stubModuleRepo{modules: []domain.Module{
		{ID: "m1", Nombre: "PARAMETROS", Posicion: 1},
		{ID: "m2", Nombre: "USUARIOS", Posicion: 2},
		{ID: "m3", Nombre: "REPORTES", Posicion: 10},
	}}
}

func adminRole() *domain.Role {
	return &domain.Role{ID: "r-admin", Nombre: domain.RoleSuperAdmin, Modulos: []domain.Module{{ID: "m1", Nombre: "PARAMETROS"}}}
}

func TestRoleService_ListRoles_Pagination(t *testing.T) {
	repo := newStubRoleRepo(
		&domain.Role{ID: "1", Nombre: "DOCENTE"},
		&domain.Role{ID: "2", Nombre: "SECRETARIA"},
		&domain.Role{ID: "3", Nombre: "ESTUDIANTE"},
	)
	svc := NewRoleService(repo, catalogue(), nil, discardLogger)

	res, err := svc.ListRoles(context.Background(), ports.ListFilter{PorPagina: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Meta.Total != 3 || res.Meta.LastPage != 2 || len(res.Data) != 2 {
		t.Fatalf("unexpected page: total=%d lastPage=%d len=%d", res.Meta.Total, res.Meta.LastPage, len(res.Data))
	}

	res, err = svc.ListRoles(context.Background(), ports.ListFilter{Buscar: "docen"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Meta.Total != 1 || res.Data[0].Nombre != "DOCENTE" {
		t.Fatalf("expected case-insensitive match on DOCENTE, got %+v", res.Data)
	}
}

func TestNormalizeFilter(t *testing.T) {
	f := normalizeFilter(ports.ListFilter{Pagina: -3, PorPagina: 5000})
	if f.Pagina != 1 || f.PorPagina != maxPerPage {
		t.Fatalf("unexpected filter: %+v", f)
	}
	f = normalizeFilter(ports.ListFilter{})
	if f.PorPagina != defaultPerPage {
		t.Fatalf("expected default page size, got %d", f.PorPagina)
	}
	f = normalizeFilter(ports.ListFilter{Pagina: 92233720368547760, PorPagina: 100})
	if f.Pagina != maxPage {
		t.Fatalf("expected page clamped to %d, got %d", maxPage, f.Pagina)
	}
	if skip := f.Skip(); skip <= 0 {
		t.Fatalf("expected positive skip for a huge page, got %d", skip)
	}
	if m := listMeta(0, 8); m.LastPage != 0 {
		t.Fatalf("expected no pages for empty result, got %d", m.LastPage)
	}
}

func TestRoleService_ListRoles_PagePastTheEnd(t *testing.T) {
	repo := newStubRoleRepo(&domain.Role{ID: "1", Nombre: "DOCENTE"})
	svc := NewRoleService(repo, catalogue(), nil, discardLogger)

	res, err := svc.ListRoles(context.Background(), ports.ListFilter{Pagina: 92233720368547760, PorPagina: 100})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Data) != 0 || res.Meta.Total != 1 {
		t.Fatalf("expected empty page with total 1, got %+v", res)
	}
}

func TestRoleService_CreateRole(t *testing.T) {
	repo := newStubRoleRepo(adminRole())
	svc := NewRoleService(repo, catalogue(), nil, discardLogger)

	role, err := svc.CreateRole(context.Background(), ports.RoleInput{Nombre: " DOCENTE ", ModuloIDs: []string{"m2", "m3"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if role.ID == "" || role.Nombre != "DOCENTE" || len(role.Modulos) != 2 {
		t.Fatalf("unexpected role: %+v", role)
	}
}

func TestRoleService_CreateRole_Validation(t *testing.T) {
	repo := newStubRoleRepo(adminRole())
	svc := NewRoleService(repo, catalogue(), nil, discardLogger)
	ctx := context.Background()

	if _, err := svc.CreateRole(ctx, ports.RoleInput{Nombre: "administrador", ModuloIDs: []string{"m1"}}); err != domain.ErrDuplicateRole {
		t.Fatalf("expected ErrDuplicateRole, got %v", err)
	}
	if _, err := svc.CreateRole(ctx, ports.RoleInput{Nombre: "DOCENTE"}); err != domain.ErrRoleWithoutModule {
		t.Fatalf("expected ErrRoleWithoutModule, got %v", err)
	}
	if _, err := svc.CreateRole(ctx, ports.RoleInput{Nombre: "DOCENTE", ModuloIDs: []string{"m1", "nope"}}); err != domain.ErrUnknownModule {
		t.Fatalf("expected ErrUnknownModule, got %v", err)
	}
	if _, err := svc.CreateRole(ctx, ports.RoleInput{Nombre: "  ", ModuloIDs: []string{"m1"}}); err != domain.ErrRoleNameRequired {
		t.Fatalf("expected ErrRoleNameRequired, got %v", err)
	}
}

func TestRoleService_UpdateRole_InvalidatesCache(t *testing.T) {
	repo := newStubRoleRepo(adminRole(), secretaria())
	cache := newStubRoleCache()
	svc := NewRoleService(repo, catalogue(), cache, discardLogger)
	gate := NewPermissionGate(repo, cache, discardLogger)
	user := activeUser()

	// Warm the cache: SECRETARIA has no REPORTES module yet.
	if err := gate.Authorize(context.Background(), user, "REPORTES"); err != domain.ErrInsufficientPermission {
		t.Fatalf("expected ErrInsufficientPermission, got %v", err)
	}

	if _, err := svc.UpdateRole(context.Background(), "r1", ports.RoleInput{Nombre: "SECRETARIA", ModuloIDs: []string{"m3"}}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "r1" {
		t.Fatalf("expected cache invalidation for r1, got %v", cache.invalidated)
	}
	if err := gate.Authorize(context.Background(), user, "REPORTES"); err != nil {
		t.Fatalf("expected updated modules to apply, got %v", err)
	}
}

func TestRoleService_UpdateRole_AdminKeepsName(t *testing.T) {
	repo := newStubRoleRepo(adminRole())
	svc := NewRoleService(repo, catalogue(), nil, discardLogger)

	role, err := svc.UpdateRole(context.Background(), "r-admin", ports.RoleInput{Nombre: "ROOT", ModuloIDs: []string{"m1", "m2"}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if role.Nombre != domain.RoleSuperAdmin || len(role.Modulos) != 2 {
		t.Fatalf("unexpected role: %+v", role)
	}
}

func TestRoleService_UpdateRole_Duplicate(t *testing.T) {
	repo := newStubRoleRepo(adminRole(), secretaria())
	svc := NewRoleService(repo, catalogue(), nil, discardLogger)

	_, err := svc.UpdateRole(context.Background(), "r1", ports.RoleInput{Nombre: "Administrador", ModuloIDs: []string{"m1"}})
	if err != domain.ErrDuplicateRole {
		t.Fatalf("expected ErrDuplicateRole, got %v", err)
	}
	if _, err := svc.UpdateRole(context.Background(), "missing", ports.RoleInput{Nombre: "X", ModuloIDs: []string{"m1"}}); err != domain.ErrRoleNotFound {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestRoleService_DeleteRole(t *testing.T) {
	repo := newStubRoleRepo(adminRole(), secretaria())
	cache := newStubRoleCache()
	svc := NewRoleService(repo, catalogue(), cache, discardLogger)

	if err := svc.DeleteRole(context.Background(), "r-admin"); err != domain.ErrProtectedRole {
		t.Fatalf("expected ErrProtectedRole, got %v", err)
	}
	if err := svc.DeleteRole(context.Background(), "r1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.roles["r1"]; ok {
		t.Fatalf("role still present")
	}
	if len(cache.invalidated) != 1 {
		t.Fatalf("expected cache invalidation, got %v", cache.invalidated)
	}
	if err := svc.DeleteRole(context.Background(), "r1"); err != domain.ErrRoleNotFound {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}
