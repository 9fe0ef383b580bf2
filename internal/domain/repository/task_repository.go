package repository

import (
	"context"

	"github.com/foxred/hillary/internal/domain/entity"
)

// TaskFilter criterios de búsqueda de tareas. CompanyID siempre lo fija el caso de uso.
type TaskFilter struct {
	CompanyID int64
	Name      string
}

// TaskRepository define el puerto de persistencia para Task.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f TaskFilter, p Page) ([]*entity.Task, int, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.Task, error)
}
