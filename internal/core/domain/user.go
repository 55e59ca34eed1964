package domain

import "time"

// User models an account of the administrative backend.
type User struct {
	ID           string    `json:"id"`
	Nombre       string    `json:"nombre"`
	PasswordHash string    `json:"-"`
	Activo       bool      `json:"activo"`
	CurrentToken string    `json:"-"`
	RolID        string    `json:"rolId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the authenticated user together with its role and modules.
type Profile struct {
	User
	Rol *Role `json:"rol,omitempty"`
}
