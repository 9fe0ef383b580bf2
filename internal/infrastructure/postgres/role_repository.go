package postgres

import (
	"context"
	"fmt"

	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	db Querier
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(db Querier) *RoleRepo {
	return &RoleRepo{db: db}
}

const roleColumns = `r.id, r.name, r.description, (SELECT COUNT(*) FROM users u WHERE u.role_id = r.id)`

// Create persiste un rol nuevo.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO roles (name, description) VALUES ($1, $2) RETURNING id`,
		role.Name, role.Description,
	).Scan(&role.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.ErrConflict, "Ya existe un rol llamado %s", role.Name)
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByID obtiene un rol por ID.
func (r *RoleRepo) GetByID(ctx context.Context, id int64) (*entity.Role, error) {
	var role entity.Role
	err := r.db.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles r WHERE r.id = $1`, id).
		Scan(&role.ID, &role.Name, &role.Description, &role.UserCount)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// Update reemplaza nombre y descripción.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	_, err := r.db.Exec(ctx, `UPDATE roles SET name = $2, description = $3 WHERE id = $1`, role.ID, role.Name, role.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.ErrConflict, "Ya existe un rol llamado %s", role.Name)
		}
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// Delete elimina un rol por ID.
func (r *RoleRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrInUse, "El rol está asignado a usuarios")
		}
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}

// Search filtra, cuenta y pagina roles.
func (r *RoleRepo) Search(ctx context.Context, f repository.RoleFilter, p repository.Page) ([]*entity.Role, int, error) {
	var w where
	w.contains("r.name", f.Name)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM roles r`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count roles: %w", err)
	}

	tail, args := w.limitOffset(p.Limit, p.Offset)
	rows, err := r.db.Query(ctx, `SELECT `+roleColumns+` FROM roles r`+w.String()+` ORDER BY r.id DESC`+tail, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search roles: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Role, 0, p.Limit)
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.UserCount); err != nil {
			return nil, 0, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, total, rows.Err()
}
