package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
	now  func() time.Time
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, now: time.Now}
}

// Create registra una empresa activa con fechas de alta y modificación iguales.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := newCompany(in, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

func newCompany(in dto.CreateCompanyRequest, at time.Time) (*entity.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "el nombre de la empresa es requerido")
	}
	at = at.UTC()
	c := &entity.Company{
		Name:      name,
		TaxID:     strings.TrimSpace(in.TaxID),
		Address:   strings.TrimSpace(in.Address),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Active:    true,
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := checkCompany(c); err != nil {
		return nil, err
	}
	return c, nil
}

func checkCompany(c *entity.Company) error {
	return checkLengths(
		field{"nombre", c.Name, maxNameLen},
		field{"NIT", c.TaxID, maxTaxIDLen},
		field{"dirección", c.Address, maxAddressLen},
		field{"teléfono", c.Phone, maxPhoneLen},
		field{"email", c.Email, maxEmailLen},
	)
}

// GetByID obtiene una empresa con sus contadores de tareas y usuarios.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	company, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Update reemplaza los datos de la empresa. Active solo cambia si viene en la petición.
func (uc *CompanyUseCase) Update(ctx context.Context, id int64, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "el nombre de la empresa es requerido")
	}
	company, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	company.Name = name
	company.TaxID = strings.TrimSpace(in.TaxID)
	company.Address = strings.TrimSpace(in.Address)
	company.Phone = strings.TrimSpace(in.Phone)
	company.Email = strings.TrimSpace(in.Email)
	if in.Active != nil {
		company.Active = *in.Active
	}
	if err := checkCompany(company); err != nil {
		return nil, err
	}
	company.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// ChangeStatus activa o desactiva la empresa y devuelve el mensaje para el usuario.
func (uc *CompanyUseCase) ChangeStatus(ctx context.Context, id int64, active bool) (string, error) {
	if _, err := uc.find(ctx, id); err != nil {
		return "", err
	}
	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		return "", err
	}
	if active {
		return "Empresa activada exitosamente", nil
	}
	return "Empresa desactivada exitosamente", nil
}

// Delete elimina la empresa. Falla con ErrInUse si aún tiene usuarios o tareas.
func (uc *CompanyUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Search busca empresas con paginación.
func (uc *CompanyUseCase) Search(ctx context.Context, in dto.CompanySearchRequest) (*dto.CompanyListResponse, error) {
	in.Normalize()
	list, total, err := uc.repo.Search(ctx, repository.CompanyFilter{
		Name:   strings.TrimSpace(in.Name),
		TaxID:  strings.TrimSpace(in.TaxID),
		Email:  strings.TrimSpace(in.Email),
		Active: in.Active,
	}, repository.Page{Limit: in.PageSize, Offset: in.Offset()})
	if err != nil {
		return nil, err
	}
	out := &dto.CompanyListResponse{CountRow: total, Data: make([]dto.CompanyResponse, 0, len(list))}
	for _, c := range list {
		out.Data = append(out.Data, *entityToCompanyResponse(c))
	}
	return out, nil
}

func (uc *CompanyUseCase) find(ctx context.Context, id int64) (*entity.Company, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Empresa con ID %d no encontrada", id)
	}
	return company, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		TaskCount: c.TaskCount,
		UserCount: c.UserCount,
	}
}
