package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxred/hillary/internal/application/usecase"
	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/domain/entity"
)

type takenEmails map[string]bool

func (t takenEmails) EmailExists(_ context.Context, email string) (bool, error) {
	return t[email], nil
}

type failingEmails struct{}

func (failingEmails) EmailExists(context.Context, string) (bool, error) {
	return false, errors.New("db caída")
}

var foxred = &entity.Company{ID: 1, Name: "FoxRed Construcción"}

func TestEmailGenerator_FormatoCompleto(t *testing.T) {
	g := usecase.NewEmailGenerator(takenEmails{}, usecase.EmailFormatFull)

	email, err := g.Generate(context.Background(), "Juan Pérez", foxred)
	require.NoError(t, err)
	assert.Equal(t, "juan.perez@foxred.construccion.com", email)
}

func TestEmailGenerator_SinEmpresaUsaDominioGenerico(t *testing.T) {
	g := usecase.NewEmailGenerator(takenEmails{}, usecase.EmailFormatFull)

	email, err := g.Generate(context.Background(), "Ana", nil)
	require.NoError(t, err)
	assert.Equal(t, "ana@empresa.com", email)
}

func TestEmailGenerator_Colisiones(t *testing.T) {
	taken := takenEmails{
		"juan.perez@foxred.construccion.com":  true,
		"juan.perez1@foxred.construccion.com": true,
	}
	g := usecase.NewEmailGenerator(taken, usecase.EmailFormatFull)

	email, err := g.Generate(context.Background(), "Juan Pérez", foxred)
	require.NoError(t, err)
	assert.Equal(t, "juan.perez2@foxred.construccion.com", email)
}

func TestEmailGenerator_FormatoCorto(t *testing.T) {
	g := usecase.NewEmailGenerator(takenEmails{"jperez@foxred.construccion.com": true}, usecase.EmailFormatShort)

	email, err := g.Generate(context.Background(), "Juan Carlos Pérez", foxred)
	require.NoError(t, err)
	assert.Equal(t, "jperez1@foxred.construccion.com", email)

	email, err = g.Generate(context.Background(), "Álvaro Ruiz", foxred)
	require.NoError(t, err)
	assert.Equal(t, "aruiz@foxred.construccion.com", email)

	email, err = g.Generate(context.Background(), "Cher", foxred)
	require.NoError(t, err)
	assert.Equal(t, "cher@foxred.construccion.com", email, "una sola palabra usa el formato completo")
}

func TestEmailGenerator_NombreVacio(t *testing.T) {
	g := usecase.NewEmailGenerator(takenEmails{}, "desconocido")

	email, err := g.Generate(context.Background(), "  ", foxred)
	require.NoError(t, err)
	assert.Equal(t, "sin-nombre@foxred.construccion.com", email)
}

func TestEmailGenerator_Agotado(t *testing.T) {
	g := usecase.NewEmailGenerator(alwaysTaken{}, usecase.EmailFormatFull)

	_, err := g.Generate(context.Background(), "Juan", foxred)
	assert.ErrorIs(t, err, domain.ErrEmailExhausted)
}

func TestEmailGenerator_ErrorDeRepositorio(t *testing.T) {
	g := usecase.NewEmailGenerator(failingEmails{}, usecase.EmailFormatFull)

	_, err := g.Generate(context.Background(), "Juan", foxred)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailExhausted)
}

type alwaysTaken struct{}

func (alwaysTaken) EmailExists(context.Context, string) (bool, error) { return true, nil }
