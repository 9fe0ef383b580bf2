package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Options parámetros de emisión y validación de tokens.
type Options struct {
	Secret     string
	Issuer     string
	Audience   string
	ExpMinutes int
}

// Identity datos del usuario que viajan en el token. El middleware RBAC decide con ellos sin consultar la DB.
type Identity struct {
	UserID    int64
	CompanyID int64
	RoleID    int64
	RoleName  string
	Name      string
	Email     string
}

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user_id"`
	CompanyID int64  `json:"company_id"`
	RoleID    int64  `json:"role_id"`
	RoleName  string `json:"role_name"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// Identity devuelve la identidad contenida en los claims.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:    c.UserID,
		CompanyID: c.CompanyID,
		RoleID:    c.RoleID,
		RoleName:  c.RoleName,
		Name:      c.Name,
		Email:     c.Email,
	}
}

var errEmptySecret = errors.New("jwt: secret vacío")

// Generate firma un token HS256 para la identidad y devuelve también su expiración.
func Generate(opts Options, id Identity) (string, time.Time, error) {
	if opts.Secret == "" {
		return "", time.Time{}, errEmptySecret
	}
	now := time.Now()
	exp := now.Add(time.Duration(opts.ExpMinutes) * time.Minute)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    opts.Issuer,
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID:    id.UserID,
		CompanyID: id.CompanyID,
		RoleID:    id.RoleID,
		RoleName:  id.RoleName,
		Name:      id.Name,
		Email:     id.Email,
	}
	if opts.Audience != "" {
		claims.Audience = jwt.ClaimStrings{opts.Audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(opts.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("firmar token: %w", err)
	}
	return signed, exp, nil
}

// Parse valida firma, emisor, audiencia y expiración (sin tolerancia de reloj) y devuelve los claims.
func Parse(opts Options, tokenString string) (*Claims, error) {
	if opts.Secret == "" {
		return nil, errEmptySecret
	}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(opts.Secret), nil
	}, parserOpts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
