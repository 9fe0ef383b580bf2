package dto

// RoleRequest alta y edición de roles. En edición ID debe coincidir con el de la ruta.
type RoleRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoleSearchRequest filtros de búsqueda de roles.
type RoleSearchRequest struct {
	PageQuery
	Name string `json:"name"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UserCount   int    `json:"user_count"`
}

// RoleListResponse página de roles.
type RoleListResponse = SearchResult[RoleResponse]
