package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/application/usecase"
	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/domain/repository"
	"github.com/foxred/hillary/internal/infrastructure/memory"
)

func TestBootstrap_CreaEmpresaYGerente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()
	uc := usecase.NewBootstrapUseCase(store, usecase.EmailFormatFull)

	out, err := uc.Bootstrap(ctx, dto.BootstrapRequest{
		Company:  dto.CreateCompanyRequest{Name: "FoxRed"},
		Manager:  "Ana Pérez",
		Password: "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana.perez@foxred.com", out.Email)

	u, err := store.Users().GetByID(ctx, out.UserID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleManager, u.RoleID)
	assert.Equal(t, out.CompanyID, u.CompanyID)
}

func TestBootstrap_RevierteLaEmpresaSiFallaElGerente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore()
	uc := usecase.NewBootstrapUseCase(store, usecase.EmailFormatFull)

	_, err := uc.Bootstrap(ctx, dto.BootstrapRequest{
		Company: dto.CreateCompanyRequest{Name: "FoxRed"},
		Manager: "Ana Pérez",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, total, err := store.Companies().Search(ctx, repository.CompanyFilter{}, repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestBootstrap_EmpresaSinNombre(t *testing.T) {
	uc := usecase.NewBootstrapUseCase(memory.NewSeededStore(), usecase.EmailFormatFull)

	_, err := uc.Bootstrap(context.Background(), dto.BootstrapRequest{Manager: "Ana", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
