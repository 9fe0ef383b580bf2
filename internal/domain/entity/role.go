package entity

// Identificadores fijos de rol. La jerarquía de permisos depende de ellos.
const (
	RoleManager int64 = 1 // Gerente
	RoleMember  int64 = 2 // Usuario
)

// Role perfil de acceso asignable a un usuario.
type Role struct {
	ID          int64
	Name        string
	Description string

	UserCount int // calculado en lectura
}
