package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/foxred/hillary/internal/domain"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/pkg/slug"
)

// Formatos de email generado.
const (
	EmailFormatFull  = "full"  // juan.perez@empresa.com
	EmailFormatShort = "short" // jperez@empresa.com
)

const (
	defaultEmailDomain = "empresa"
	maxEmailAttempts   = 1000
)

// emailChecker es lo único que el generador necesita del repositorio de usuarios.
type emailChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

// EmailGenerator asigna direcciones únicas a usuarios dados de alta sin email.
// La unicidad se comprueba contra todos los usuarios; dos altas simultáneas con
// el mismo nombre pueden obtener la misma dirección.
type EmailGenerator struct {
	users  emailChecker
	format string
}

// NewEmailGenerator construye el generador. Un formato desconocido se trata como "full".
func NewEmailGenerator(users emailChecker, format string) *EmailGenerator {
	if format != EmailFormatShort {
		format = EmailFormatFull
	}
	return &EmailGenerator{users: users, format: format}
}

// Generate devuelve la primera dirección libre para name en company (nil = dominio genérico).
// Si la base ya existe prueba prefijo1, prefijo2, ... hasta encontrar una libre.
func (g *EmailGenerator) Generate(ctx context.Context, name string, company *entity.Company) (string, error) {
	prefix, domainPart := g.parts(name, company)

	email := prefix + "@" + domainPart + ".com"
	for n := 1; n <= maxEmailAttempts; n++ {
		exists, err := g.users.EmailExists(ctx, email)
		if err != nil {
			return "", fmt.Errorf("comprobar email %s: %w", email, err)
		}
		if !exists {
			return email, nil
		}
		email = fmt.Sprintf("%s%d@%s.com", prefix, n, domainPart)
	}
	return "", domain.Errorf(domain.ErrEmailExhausted, "no se pudo generar un email único para %q", name)
}

func (g *EmailGenerator) parts(name string, company *entity.Company) (prefix, domainPart string) {
	companyName := defaultEmailDomain
	if company != nil && strings.TrimSpace(company.Name) != "" {
		companyName = company.Name
	}
	domainPart = slug.Clean(companyName)

	if g.format == EmailFormatShort {
		words := strings.Fields(name)
		if len(words) >= 2 {
			r, _ := utf8.DecodeRuneInString(words[0])
			initial := slug.Clean(string(r))
			if initial == slug.Fallback {
				initial = ""
			}
			return initial + slug.Clean(words[len(words)-1]), domainPart
		}
	}
	return slug.Clean(name), domainPart
}
