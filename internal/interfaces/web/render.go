package web

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"

	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/infrastructure/apiclient"
	"github.com/foxred/hillary/internal/infrastructure/session"
	apphttp "github.com/foxred/hillary/internal/interfaces/http"
	"github.com/foxred/hillary/internal/interfaces/web/views"
)

const csrfContextKey = "csrf"

// page arma los datos comunes y consume los flashes pendientes.
func page(c *fiber.Ctx, title string) views.Page {
	s := currentSession(c)
	p := views.Page{Title: title, Flashes: s.TakeFlashes()}
	if token, ok := c.Locals(csrfContextKey).(string); ok {
		p.CSRF = token
	}
	if s.LoggedIn() {
		p.User = &views.User{
			Name:        s.Name,
			Email:       s.Email,
			CompanyName: s.CompanyName,
			RoleName:    s.RoleName,
			IsManager:   s.IsManager(),
		}
	}
	return p
}

func render(c *fiber.Ctx, comp templ.Component) error {
	c.Type("html", "utf-8")
	return comp.Render(c.UserContext(), c.Response().BodyWriter())
}

// withError agrega un mensaje de error a una página que se vuelve a pintar.
func withError(p views.Page, msg string) views.Page {
	p.Flashes = append(p.Flashes, session.Flash{Kind: session.FlashError, Message: msg})
	return p
}

// apiMessage texto para el usuario a partir de un error de la API.
func apiMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "No se pudo conectar con el servidor. Intente más tarde."
}

// isFormError errores que se muestran sobre el mismo formulario.
func isFormError(err error) bool {
	switch apiclient.StatusOf(err) {
	case fiber.StatusBadRequest, fiber.StatusConflict, fiber.StatusNotFound:
		return true
	}
	return false
}

// fail convierte un error de la API en flash y redirección. Un 401 cierra la sesión.
func fail(c *fiber.Ctx, err error, redirect string) error {
	s := currentSession(c)
	switch status := apiclient.StatusOf(err); {
	case status == fiber.StatusUnauthorized:
		s.Logout()
		s.AddFlash(session.FlashWarning, "Su sesión expiró. Inicie sesión nuevamente.")
		return c.Redirect("/auth/login")
	case status == 0 || status >= fiber.StatusInternalServerError:
		apphttp.RequestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("llamada a la API")
	}
	s.AddFlash(session.FlashError, apiMessage(err))
	return c.Redirect(redirect)
}

// loadFailed error al cargar un registro: 404 y 403 como página de error, el resto con fail.
func loadFailed(c *fiber.Ctx, err error, back string) error {
	if status := apiclient.StatusOf(err); status == fiber.StatusNotFound || status == fiber.StatusForbidden {
		return fiber.NewError(status, apiMessage(err))
	}
	return fail(c, err, back)
}

// errorHandler página de error para errores no resueltos por los handlers.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Ocurrió un error inesperado."
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		msg = fe.Message
	} else {
		apphttp.RequestLogger(c).Error().Err(err).Msg("error no controlado")
	}
	c.Status(status)
	return render(c, views.Error(page(c, "Error"), status, msg))
}

// paramID id positivo de la ruta; si no es válido responde 404.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusNotFound, "El recurso solicitado no existe.")
	}
	return int64(id), nil
}

// pageQuery paginación desde la query string.
func pageQuery(c *fiber.Ctx) dto.PageQuery {
	q := dto.PageQuery{PageNumber: c.QueryInt("page_number", 1), PageSize: c.QueryInt("page_size", dto.DefaultPageSize)}
	q.Normalize()
	return q
}

func newPager(path string, q url.Values, pq dto.PageQuery, total int) views.Pager {
	return views.Pager{Path: path, Query: q, PageNumber: pq.PageNumber, PageSize: pq.PageSize, Total: total}
}

func formInt64(c *fiber.Ctx, key string) int64 {
	n, _ := strconv.ParseInt(c.FormValue(key), 10, 64)
	return n
}

func queryInt64(c *fiber.Ctx, key string) int64 {
	n, _ := strconv.ParseInt(c.Query(key), 10, 64)
	return n
}
