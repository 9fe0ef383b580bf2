package usecase

import (
	"unicode/utf8"

	"github.com/foxred/hillary/internal/domain"
)

// Longitudes máximas de las columnas VARCHAR del esquema.
const (
	maxNameLen        = 200
	maxTaxIDLen       = 20
	maxAddressLen     = 300
	maxPhoneLen       = 50
	maxEmailLen       = 200
	maxRoleNameLen    = 100
	maxDescriptionLen = 300
)

type field struct {
	label string
	value string
	max   int
}

// checkLengths devuelve ErrInvalidInput para el primer campo que excede su límite (en caracteres).
func checkLengths(fields ...field) error {
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > f.max {
			return domain.Errorf(domain.ErrInvalidInput, "El campo %s no puede superar %d caracteres", f.label, f.max)
		}
	}
	return nil
}
