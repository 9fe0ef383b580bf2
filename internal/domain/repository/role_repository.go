package repository

import (
	"context"

	"github.com/foxred/hillary/internal/domain/entity"
)

// RoleFilter criterios de búsqueda de roles.
type RoleFilter struct {
	Name string
}

// RoleRepository define el puerto de persistencia para Role.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id int64) (*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f RoleFilter, p Page) ([]*entity.Role, int, error)
}
