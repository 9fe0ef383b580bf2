package dto

// Límites de paginación de los endpoints de búsqueda.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPageNumber   = 1_000_000
)

// PageQuery paginación de las búsquedas (page_number empieza en 1).
type PageQuery struct {
	PageNumber int `json:"page_number" query:"page_number"`
	PageSize   int `json:"page_size" query:"page_size"`
}

// Normalize aplica valores por defecto y límites.
func (p *PageQuery) Normalize() {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageNumber > MaxPageNumber {
		p.PageNumber = MaxPageNumber
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset filas a saltar para la página actual. Llamar después de Normalize.
func (p PageQuery) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// SearchResult página de resultados más el total sin paginar.
type SearchResult[T any] struct {
	CountRow int `json:"count_row"`
	Data     []T `json:"data"`
}

// TotalPages número de páginas para el tamaño dado.
func (r SearchResult[T]) TotalPages(pageSize int) int {
	if pageSize <= 0 || r.CountRow == 0 {
		return 0
	}
	return (r.CountRow + pageSize - 1) / pageSize
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RoleErrorResponse 403 del control por rol: incluye los roles aceptados por la ruta.
type RoleErrorResponse struct {
	Code          string  `json:"code"`
	Message       string  `json:"message"`
	RequiredRoles []int64 `json:"required_roles"`
	YourRole      int64   `json:"your_role"`
}

// MessageResponse confirmación de operaciones sin cuerpo propio.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}
