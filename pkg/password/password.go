// Package password calcula y compara el hash de contraseñas de usuario.
//
// El formato es SHA-256 en hexadecimal minúscula, sin sal: es el que ya
// tienen las cuentas existentes en la base de datos.
package password

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash devuelve el hash de plain. Una contraseña en blanco produce "".
func Hash(plain string) string {
	if strings.TrimSpace(plain) == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// Verify compara plain contra un hash almacenado, sin distinguir mayúsculas en el hex.
func Verify(plain, hash string) bool {
	h := Hash(plain)
	if h == "" || hash == "" {
		return false
	}
	return strings.EqualFold(h, hash)
}
