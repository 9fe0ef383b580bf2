package usecase

import (
	"context"
	"time"

	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		companies repository.CompanyRepository,
		users repository.UserRepository,
	) error) error
}

// BootstrapUseCase crea una empresa y su primer Gerente de forma atómica.
type BootstrapUseCase struct {
	tx     TxRunner
	format string
}

// NewBootstrapUseCase construye el caso de uso; format es el formato de email generado.
func NewBootstrapUseCase(tx TxRunner, format string) *BootstrapUseCase {
	return &BootstrapUseCase{tx: tx, format: format}
}

// Bootstrap crea la empresa y el Gerente. Si algo falla no queda ninguno de los dos.
func (uc *BootstrapUseCase) Bootstrap(ctx context.Context, in dto.BootstrapRequest) (*dto.BootstrapResponse, error) {
	company, err := newCompany(in.Company, time.Now())
	if err != nil {
		return nil, err
	}
	var out dto.BootstrapResponse
	err = uc.tx.Run(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		if err := companies.Create(ctx, company); err != nil {
			return err
		}
		emails := NewEmailGenerator(users, uc.format)
		created, err := NewUserUseCase(users, companies, emails).Register(ctx, dto.CreateUserRequest{
			CompanyID: company.ID,
			RoleID:    entity.RoleManager,
			Name:      in.Manager,
			Email:     in.Email,
			Password:  in.Password,
		})
		if err != nil {
			return err
		}
		out = dto.BootstrapResponse{CompanyID: company.ID, UserID: created.ID, Email: created.Email}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
