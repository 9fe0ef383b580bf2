package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

const userSelect = `
	SELECT u.id, u.company_id, u.role_id, u.name, u.email, u.password_hash, u.active,
	       COALESCE(c.name, ''), COALESCE(r.name, '')
	FROM users u
	LEFT JOIN companies c ON c.id = u.company_id
	LEFT JOIN roles r ON r.id = u.role_id`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.CompanyID, &u.RoleID, &u.Name, &u.Email, &u.PasswordHash, &u.Active,
		&u.CompanyName, &u.RoleName)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (company_id, role_id, name, email, password_hash, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		user.CompanyID, user.RoleID, user.Name, user.Email, user.PasswordHash, user.Active,
	).Scan(&user.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrInvalidInput, "La empresa o el rol indicados no existen")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, "get user by id", userSelect+` WHERE u.id = $1`, id)
}

// GetActiveByEmail obtiene el usuario activo con ese email (cualquier empresa).
func (r *UserRepo) GetActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get user by email", userSelect+` WHERE u.email = $1 AND u.active ORDER BY u.id LIMIT 1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// EmailExists informa si algún usuario, de cualquier empresa, ya usa el email.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

// Update actualiza nombre, email, password y estado.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET company_id = $2, role_id = $3, name = $4, email = $5, password_hash = $6, active = $7
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.CompanyID, user.RoleID, user.Name, user.Email, user.PasswordHash, user.Active,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrInvalidInput, "La empresa o el rol indicados no existen")
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SetActive cambia solo el estado activo.
func (r *UserRepo) SetActive(ctx context.Context, id int64, active bool) error {
	if _, err := r.db.Exec(ctx, `UPDATE users SET active = $2 WHERE id = $1`, id, active); err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// Search filtra, cuenta y pagina usuarios.
func (r *UserRepo) Search(ctx context.Context, f repository.UserFilter, p repository.Page) ([]*entity.User, int, error) {
	var w where
	if f.CompanyID != 0 {
		w.add("u.company_id = $%d", f.CompanyID)
	}
	w.contains("u.name", f.Name)
	w.contains("u.email", f.Email)
	if f.RoleID != 0 {
		w.add("u.role_id = $%d", f.RoleID)
	}
	if f.Active != nil {
		w.add("u.active = $%d", *f.Active)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	tail, args := w.limitOffset(p.Limit, p.Offset)
	rows, err := r.db.Query(ctx, userSelect+w.String()+` ORDER BY u.id DESC`+tail, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.User, 0, p.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}
