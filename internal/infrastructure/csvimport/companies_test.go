package csvimport_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/foxred/hillary/internal/application/usecase"
	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/infrastructure/csvimport"
	"github.com/foxred/hillary/internal/infrastructure/memory"
)

func TestReadCompanies_ConCabecera(t *testing.T) {
	in := "name,tax_id,address,phone,email\nFoxRed, 900123 ,Calle 1,555,info@foxred.com\n\nAcme,800\n"
	rows, err := csvimport.ReadCompanies(strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "FoxRed", rows[0].Company.Name)
	assert.Equal(t, "900123", rows[0].Company.TaxID)
	assert.Equal(t, "info@foxred.com", rows[0].Company.Email)
	assert.Equal(t, "Acme", rows[1].Company.Name)
	assert.Empty(t, rows[1].Company.Phone)
}

func TestReadCompanies_Latin1YPuntoYComa(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Construcción Ñandú;901;Bogotá\n")
	require.NoError(t, err)

	rows, err := csvimport.ReadCompanies(bytes.NewReader([]byte(encoded)), true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Construcción Ñandú", rows[0].Company.Name)
	assert.Equal(t, "Bogotá", rows[0].Company.Address)
}

func TestReadCompanies_DescartaBOM(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		latin1 bool
	}{
		{"sin cabecera", "\ufeffAcme,900,Calle 1\n", false},
		{"con cabecera", "\ufeffnombre,nit\nAcme,900\n", false},
		{"utf-8 con BOM aunque se pida latin1", "\ufeffAcme,900\n", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := csvimport.ReadCompanies(strings.NewReader(tc.in), tc.latin1)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "Acme", rows[0].Company.Name)
			assert.Equal(t, "900", rows[0].Company.TaxID)
		})
	}
}

func TestImportCompanies_ContinuaTrasErrores(t *testing.T) {
	store := memory.NewSeededStore()
	uc := usecase.NewCompanyUseCase(store.Companies())
	rows, err := csvimport.ReadCompanies(strings.NewReader("FoxRed\n ,900\nAcme\n"), false)
	require.NoError(t, err)

	res, err := csvimport.ImportCompanies(context.Background(), uc, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 2, res.Failures[0].Line)
	assert.ErrorIs(t, res.Failures[0].Err, domain.ErrInvalidInput)
}
