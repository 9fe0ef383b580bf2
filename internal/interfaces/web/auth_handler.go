package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/infrastructure/apiclient"
	"github.com/foxred/hillary/internal/infrastructure/session"
	"github.com/foxred/hillary/internal/interfaces/web/views"
)

// AuthHandler inicio y cierre de sesión.
type AuthHandler struct {
	api      *apiclient.Client
	sessions session.Store
}

func NewAuthHandler(api *apiclient.Client, sessions session.Store) *AuthHandler {
	return &AuthHandler{api: api, sessions: sessions}
}

// Home página de inicio.
func (h *AuthHandler) Home(c *fiber.Ctx) error {
	return render(c, views.Home(page(c, "Inicio")))
}

// LoginForm GET /auth/login. Si ya hay sesión, va al inicio.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if currentSession(c).LoggedIn() {
		return c.Redirect("/")
	}
	form := views.LoginForm{ReturnURL: c.Query("return_url")}
	return render(c, views.Login(page(c, "Iniciar sesión"), form))
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	form := views.LoginForm{
		Email:     strings.TrimSpace(c.FormValue("email")),
		ReturnURL: c.FormValue("return_url"),
	}
	out, err := h.api.Login(c.UserContext(), dto.LoginRequest{Email: form.Email, Password: c.FormValue("password")})
	if err != nil {
		if isFormError(err) || apiclient.StatusOf(err) == fiber.StatusUnauthorized {
			return render(c, views.Login(withError(page(c, "Iniciar sesión"), apiMessage(err)), form))
		}
		return fail(c, err, "/auth/login")
	}

	rotateSession(c, h.sessions)
	s := currentSession(c)
	*s = session.Session{
		Token:       out.Token,
		ExpiresAt:   out.ExpiresAt,
		UserID:      out.UserID,
		Name:        out.Name,
		Email:       out.Email,
		CompanyID:   out.CompanyID,
		CompanyName: out.CompanyName,
		RoleID:      out.RoleID,
		RoleName:    out.RoleName,
		Flashes:     s.Flashes,
	}
	s.AddFlash(session.FlashSuccess, "Bienvenido, "+out.Name)
	if isLocalURL(form.ReturnURL) {
		return c.Redirect(form.ReturnURL)
	}
	return c.Redirect("/")
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	s := currentSession(c)
	s.Logout()
	rotateSession(c, h.sessions)
	s.AddFlash(session.FlashInfo, "Sesión cerrada correctamente.")
	return c.Redirect("/")
}
