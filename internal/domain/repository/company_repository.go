package repository

import (
	"context"

	"github.com/foxred/hillary/internal/domain/entity"
)

// CompanyFilter criterios de búsqueda de empresas. Los textos se comparan por "contiene", sin mayúsculas.
type CompanyFilter struct {
	Name   string
	TaxID  string
	Email  string
	Active *bool
}

// CompanyRepository define el puerto de persistencia para Company.
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id int64) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	// Search devuelve la página pedida, ordenada por id descendente, y el total sin paginar.
	Search(ctx context.Context, f CompanyFilter, p Page) ([]*entity.Company, int, error)
}
