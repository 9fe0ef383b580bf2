package dto

import "time"

// CreateUserRequest alta de usuario (password en texto, se hashea en el caso de uso).
// Email vacío = se genera a partir del nombre y la empresa.
type CreateUserRequest struct {
	CompanyID int64  `json:"company_id"`
	RoleID    int64  `json:"role_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// UpdateUserRequest edición de usuario. Email y password vacíos conservan el valor actual.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSearchRequest filtros de búsqueda de usuarios. La empresa la fija el token.
type UserSearchRequest struct {
	PageQuery
	Name   string `json:"name"`
	Email  string `json:"email"`
	RoleID int64  `json:"role_id"`
	Active *bool  `json:"active"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"company_id"`
	CompanyName string `json:"company_name"`
	RoleID      int64  `json:"role_id"`
	RoleName    string `json:"role_name"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Active      bool   `json:"active"`
}

// UserListResponse página de usuarios.
type UserListResponse = SearchResult[UserResponse]

// UserCreatedResponse confirmación de alta con el email asignado.
type UserCreatedResponse struct {
	Message   string `json:"message"`
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CompanyID int64  `json:"company_id,omitempty"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido más los datos de sesión que necesita el frontend.
type LoginResponse struct {
	Token       string    `json:"token"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CompanyID   int64     `json:"company_id"`
	CompanyName string    `json:"company_name"`
	RoleID      int64     `json:"role_id"`
	RoleName    string    `json:"role_name"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MeResponse identidad del token actual.
type MeResponse struct {
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CompanyID int64  `json:"company_id"`
	RoleID    int64  `json:"role_id"`
	RoleName  string `json:"role_name"`
	IsAdmin   bool   `json:"is_admin"`
}
