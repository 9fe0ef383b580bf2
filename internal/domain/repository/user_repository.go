package repository

import (
	"context"

	"github.com/foxred/hillary/internal/domain/entity"
)

// UserFilter criterios de búsqueda de usuarios. CompanyID 0 = todas las empresas.
type UserFilter struct {
	CompanyID int64
	Name      string
	Email     string
	RoleID    int64
	Active    *bool
}

// UserRepository define el puerto de persistencia para User.
// Las lecturas devuelven CompanyName y RoleName unidos.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetActiveByEmail busca entre usuarios activos; es la consulta del login.
	GetActiveByEmail(ctx context.Context, email string) (*entity.User, error)
	// EmailExists consulta todas las empresas, activos o no.
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f UserFilter, p Page) ([]*entity.User, int, error)
}
