// Package slug convierte nombres de personas y empresas en fragmentos válidos para una dirección de correo.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback es el fragmento usado cuando el texto no aporta ningún carácter válido.
const Fallback = "sin-nombre"

// Clean pasa a minúsculas, sustituye espacios por puntos, elimina tildes y
// descarta todo lo que no sea letra, dígito o punto.
//
//	Clean("José  Núñez") == "jose..nunez"
func Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return Fallback
	}
	s := strings.ReplaceAll(strings.ToLower(text), " ", ".")

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return Fallback
	}
	return b.String()
}
