// Package session guarda el estado del frontend web entre peticiones: el JWT emitido
// por la API, la identidad del usuario y los mensajes flash de un solo uso.
package session

import (
	"context"
	"time"

	"github.com/foxred/hillary/internal/domain/entity"
)

// Tipos de mensaje flash.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
)

// Flash mensaje que se muestra una vez en la siguiente página renderizada.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Session datos asociados a la cookie de sesión.
type Session struct {
	Token       string    `json:"token,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
	UserID      int64     `json:"user_id,omitempty"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email,omitempty"`
	CompanyID   int64     `json:"company_id,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	RoleID      int64     `json:"role_id,omitempty"`
	RoleName    string    `json:"role_name,omitempty"`
	Flashes     []Flash   `json:"flashes,omitempty"`
}

// LoggedIn indica si hay un token vigente.
func (s *Session) LoggedIn() bool {
	if s == nil || s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || time.Now().Before(s.ExpiresAt)
}

// IsManager rol Gerente.
func (s *Session) IsManager() bool {
	return s != nil && s.RoleID == entity.RoleManager
}

// Empty indica que no hay nada que persistir: ni token ni flashes pendientes.
func (s *Session) Empty() bool {
	return s == nil || (s.Token == "" && len(s.Flashes) == 0)
}

// AddFlash encola un mensaje.
func (s *Session) AddFlash(kind, msg string) {
	s.Flashes = append(s.Flashes, Flash{Kind: kind, Message: msg})
}

// TakeFlashes devuelve y vacía los mensajes pendientes.
func (s *Session) TakeFlashes() []Flash {
	out := s.Flashes
	s.Flashes = nil
	return out
}

// Logout borra la identidad conservando los flashes.
func (s *Session) Logout() {
	*s = Session{Flashes: s.Flashes}
}

// Store persistencia de sesiones por id. Get devuelve (nil, nil) si no existe o expiró.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Close() error
}
