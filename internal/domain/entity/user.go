package entity

// User representa un usuario del sistema (pertenece a una Company y tiene un Role).
type User struct {
	ID           int64
	CompanyID    int64
	RoleID       int64
	Name         string
	Email        string
	PasswordHash string // SHA-256 hex, ver pkg/password
	Active       bool

	// Datos de lectura unidos desde company y role.
	CompanyName string
	RoleName    string
}

// IsManager informa si el usuario tiene el rol Gerente.
func (u *User) IsManager() bool {
	return u != nil && u.RoleID == RoleManager
}
