package web

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/foxred/hillary/internal/infrastructure/session"
	apphttp "github.com/foxred/hillary/internal/interfaces/http"
)

const (
	cookieName     = "hillary_session"
	localSession   = "web.session"
	localSessionID = "web.session_id"
)

// SessionMiddleware carga la sesión de la cookie (o crea una nueva) y la guarda
// al terminar la petición. Los errores del handler se resuelven aquí para que la
// página de error consuma los flashes antes de persistir.
//
// Una sesión sin token ni flashes no se guarda: si venía de la cookie se borra.
// Así las visitas anónimas no dejan entradas en el almacén.
func SessionMiddleware(store session.Store, ttl time.Duration, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(cookieName)
		var s *session.Session
		if id != "" {
			loaded, err := store.Get(c.UserContext(), id)
			if err != nil {
				apphttp.RequestLogger(c).Error().Err(err).Msg("leer sesión")
			}
			s = loaded
		}
		stored := s != nil
		if s == nil {
			id = uuid.NewString()
			s = &session.Session{}
		}
		c.Locals(localSession, s)
		c.Locals(localSessionID, id)

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		if s.Empty() {
			if stored {
				if err := store.Delete(c.UserContext(), id); err != nil {
					apphttp.RequestLogger(c).Warn().Err(err).Msg("borrar sesión vacía")
				}
				c.Cookie(&fiber.Cookie{
					Name:     cookieName,
					Path:     "/",
					Expires:  time.Unix(0, 0),
					Secure:   secure,
					HTTPOnly: true,
					SameSite: fiber.CookieSameSiteLaxMode,
				})
			}
			return nil
		}

		id, _ = c.Locals(localSessionID).(string)
		if err := store.Save(c.UserContext(), id, s, ttl); err != nil {
			apphttp.RequestLogger(c).Error().Err(err).Msg("guardar sesión")
		}
		c.Cookie(&fiber.Cookie{
			Name:     cookieName,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().Add(ttl),
			Secure:   secure,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return nil
	}
}

// currentSession sesión de la petición; nunca nil.
func currentSession(c *fiber.Ctx) *session.Session {
	if s, ok := c.Locals(localSession).(*session.Session); ok {
		return s
	}
	s := &session.Session{}
	c.Locals(localSession, s)
	return s
}

// rotateSession asigna un id nuevo tras el login y descarta el anterior.
func rotateSession(c *fiber.Ctx, store session.Store) {
	if old, ok := c.Locals(localSessionID).(string); ok && old != "" {
		if err := store.Delete(c.UserContext(), old); err != nil {
			apphttp.RequestLogger(c).Warn().Err(err).Msg("borrar sesión anterior")
		}
	}
	c.Locals(localSessionID, uuid.NewString())
}

// RequireLogin redirige al login conservando la URL de retorno.
func RequireLogin(c *fiber.Ctx) error {
	s := currentSession(c)
	if s.LoggedIn() {
		return c.Next()
	}
	if s.Token != "" {
		s.Logout()
		s.AddFlash(session.FlashWarning, "Su sesión expiró. Inicie sesión nuevamente.")
	} else {
		s.AddFlash(session.FlashWarning, "Debe iniciar sesión para continuar.")
	}
	target := "/auth/login"
	if c.Method() == fiber.MethodGet {
		target += "?return_url=" + url.QueryEscape(c.OriginalURL())
	}
	return c.Redirect(target)
}

// isLocalURL acepta solo rutas relativas al sitio (evita redirecciones abiertas).
func isLocalURL(u string) bool {
	if u == "" || u[0] != '/' {
		return false
	}
	if len(u) > 1 && (u[1] == '/' || u[1] == '\\') {
		return false
	}
	return !strings.ContainsAny(u, "\r\n")
}
