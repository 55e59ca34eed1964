package domain

import "strings"

// RoleSuperAdmin is the name of the role that owns every administrative
// module. Whether it bypasses a permission check is decided by each route.
const RoleSuperAdmin = "ADMINISTRADOR"

// Module names declared by the protected routes.
const (
	ModuleParametros       = "PARAMETROS"
	ModuleUsuarios         = "USUARIOS"
	ModuleFiliales         = "FILIALES"
	ModuleTiposEstudiante  = "TIPOS DE ESTUDIANTE"
	ModuleIdiomas          = "IDIOMAS"
	ModuleLibros           = "LIBROS"
	ModuleCursos           = "CURSOS"
	ModuleInscripciones    = "INSCRIPCIONES"
	ModuleEstudiantes      = "ESTUDIANTES"
	ModuleReportes         = "REPORTES"
	ModuleFirmas           = "FIRMAS"
	ModulePreinscripciones = "PREINSCRIPCIONES"
)

// Module is a capability tag checked against route requirements.
type Module struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Posicion int    `json:"posicion"`
}

// Role is a named bundle of modules.
type Role struct {
	ID       string   `json:"id"`
	Nombre   string   `json:"nombre"`
	Posicion int      `json:"posicion"`
	Modulos  []Module `json:"modulos,omitempty"`
}

// ModuleNames returns the names of the modules granted by the role.
func (r *Role) ModuleNames() []string {
	names := make([]string, 0, len(r.Modulos))
	for _, m := range r.Modulos {
		names = append(names, m.Nombre)
	}
	return names
}

// Grants reports whether the role owns at least one of the required modules.
func (r *Role) Grants(required []string) bool {
	for _, m := range r.Modulos {
		for _, name := range required {
			if m.Nombre == name {
				return true
			}
		}
	}
	return false
}

// IsSuperAdmin reports whether r is the distinguished administrator role.
func (r *Role) IsSuperAdmin() bool {
	return strings.EqualFold(r.Nombre, RoleSuperAdmin)
}
