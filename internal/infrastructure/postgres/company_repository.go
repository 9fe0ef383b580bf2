package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	db Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(db Querier) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = `
	c.id, c.name, c.tax_id, c.address, c.phone, c.email, c.active, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM tasks t WHERE t.company_id = c.id),
	(SELECT COUNT(*) FROM users u WHERE u.company_id = c.id)`

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(&c.ID, &c.Name, &c.TaxID, &c.Address, &c.Phone, &c.Email, &c.Active,
		&c.CreatedAt, &c.UpdatedAt, &c.TaskCount, &c.UserCount)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva empresa y asigna su ID.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (name, tax_id, address, phone, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		company.Name, company.TaxID, company.Address, company.Phone, company.Email,
		company.Active, company.CreatedAt, company.UpdatedAt,
	).Scan(&company.ID)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID con sus contadores.
func (r *CompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT`+companyColumns+` FROM companies c WHERE c.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// Update reemplaza los datos editables de la empresa.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, tax_id = $3, address = $4, phone = $5, email = $6, active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		company.ID, company.Name, company.TaxID, company.Address,
		company.Phone, company.Email, company.Active, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// SetActive cambia solo el estado activo.
func (r *CompanyRepo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.db.Exec(ctx, `UPDATE companies SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set company active: %w", err)
	}
	return nil
}

// Delete elimina una empresa por ID.
func (r *CompanyRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Errorf(domain.ErrInUse, "La empresa tiene usuarios o tareas asociadas")
		}
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

// Search filtra, cuenta y pagina empresas ordenadas por id descendente.
func (r *CompanyRepo) Search(ctx context.Context, f repository.CompanyFilter, p repository.Page) ([]*entity.Company, int, error) {
	var w where
	w.contains("c.name", f.Name)
	w.contains("c.tax_id", f.TaxID)
	w.contains("c.email", f.Email)
	if f.Active != nil {
		w.add("c.active = $%d", *f.Active)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies c`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	tail, args := w.limitOffset(p.Limit, p.Offset)
	rows, err := r.db.Query(ctx, `SELECT`+companyColumns+` FROM companies c`+w.String()+` ORDER BY c.id DESC`+tail, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search companies: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Company, 0, p.Limit)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}
