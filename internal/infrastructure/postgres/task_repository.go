package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación del puerto TaskRepository sobre PostgreSQL.
type TaskRepo struct {
	db Querier
}

// NewTaskRepository construye el adaptador de persistencia para tareas.
func NewTaskRepository(db Querier) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskSelect = `
	SELECT t.id, t.company_id, t.name, t.description, COALESCE(c.name, '')
	FROM tasks t
	LEFT JOIN companies c ON c.id = t.company_id`

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	if err := row.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Description, &t.CompanyName); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una tarea nueva.
func (r *TaskRepo) Create(ctx context.Context, task *entity.Task) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (company_id, name, description) VALUES ($1, $2, $3) RETURNING id`,
		task.CompanyID, task.Name, task.Description,
	).Scan(&task.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrInvalidInput, "La empresa %d no existe", task.CompanyID)
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea con el nombre de su empresa.
func (r *TaskRepo) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, taskSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// Update reemplaza empresa, nombre y descripción.
func (r *TaskRepo) Update(ctx context.Context, task *entity.Task) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tasks SET company_id = $2, name = $3, description = $4 WHERE id = $1`,
		task.ID, task.CompanyID, task.Name, task.Description,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete elimina una tarea por ID.
func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Search filtra, cuenta y pagina tareas.
func (r *TaskRepo) Search(ctx context.Context, f repository.TaskFilter, p repository.Page) ([]*entity.Task, int, error) {
	var w where
	if f.CompanyID != 0 {
		w.add("t.company_id = $%d", f.CompanyID)
	}
	w.contains("t.name", f.Name)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks t`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	tail, args := w.limitOffset(p.Limit, p.Offset)
	list, err := r.list(ctx, taskSelect+w.String()+` ORDER BY t.id DESC`+tail, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByCompany devuelve todas las tareas de una empresa, la más reciente primero.
func (r *TaskRepo) ListByCompany(ctx context.Context, companyID int64) ([]*entity.Task, error) {
	return r.list(ctx, taskSelect+` WHERE t.company_id = $1 ORDER BY t.id DESC`, companyID)
}

func (r *TaskRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var list []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
