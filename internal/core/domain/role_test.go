package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestRole_Grants_AnyOf(t *testing.T) {
	r := &Role{Nombre: "SECRETARIA", Modulos: []Module{{Nombre: "A"}, {Nombre: "B"}}}

	if r.Grants([]string{"C", "D"}) {
		t.Fatalf("expected no grant for disjoint modules")
	}
	if !r.Grants([]string{"B", "D"}) {
		t.Fatalf("expected grant when one module matches")
	}
	if r.Grants(nil) {
		t.Fatalf("expected no grant for empty requirement")
	}
}

func TestRole_IsSuperAdmin(t *testing.T) {
	if !(&Role{Nombre: "administrador"}).IsSuperAdmin() {
		t.Fatalf("expected case-insensitive match")
	}
	if (&Role{Nombre: "DOCENTE"}).IsSuperAdmin() {
		t.Fatalf("DOCENTE is not the super role")
	}
}

func TestAuthError_Is(t *testing.T) {
	wrapped := fmt.Errorf("authenticate: %w", ErrExpiredSession)
	if !errors.Is(wrapped, ErrExpiredSession) {
		t.Fatalf("expected wrapped error to match ErrExpiredSession")
	}
	if errors.Is(wrapped, ErrInvalidToken) {
		t.Fatalf("expired session must be distinct from invalid token")
	}

	var ae *AuthError
	if !errors.As(wrapped, &ae) || ae.Kind != ExpiredSession {
		t.Fatalf("expected AuthError of kind ExpiredSession, got %v", ae)
	}
	if ae.Kind.String() != "expired_session" {
		t.Fatalf("unexpected kind name %q", ae.Kind.String())
	}
}
