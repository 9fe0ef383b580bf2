package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// UpdateCompanyRequest reemplazo completo de una empresa. Active nil conserva el valor actual.
type UpdateCompanyRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Active  *bool  `json:"active"`
}

// ChangeStatusRequest activa o desactiva un registro.
type ChangeStatusRequest struct {
	Active bool `json:"active"`
}

// CompanySearchRequest filtros de búsqueda de empresas.
type CompanySearchRequest struct {
	PageQuery
	Name   string `json:"name"`
	TaxID  string `json:"tax_id"`
	Email  string `json:"email"`
	Active *bool  `json:"active"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	TaskCount int       `json:"task_count"`
	UserCount int       `json:"user_count"`
}

// CompanyListResponse página de empresas.
type CompanyListResponse = SearchResult[CompanyResponse]
