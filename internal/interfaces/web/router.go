// Package web es el frontend renderizado en servidor. Cada acción llama a la API
// REST con el token guardado en la sesión y traduce los errores en mensajes flash.
package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/foxred/hillary/internal/infrastructure/apiclient"
	"github.com/foxred/hillary/internal/infrastructure/session"
	apphttp "github.com/foxred/hillary/internal/interfaces/http"
	"github.com/foxred/hillary/internal/interfaces/web/views"
	"github.com/foxred/hillary/pkg/logger"
)

// Deps dependencias del frontend.
type Deps struct {
	AppName      string
	API          *apiclient.Client
	Sessions     session.Store
	SessionTTL   time.Duration
	CookieSecure bool
	CSRF         bool
	Log          *logger.Logger
}

// NewApp crea la app fiber con el middleware base y las rutas.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ErrorHandler: errorHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(apphttp.RequestLoggerMiddleware(deps.Log))
	Router(app, deps)
	return app
}

// Router registra sesión, CSRF y las páginas.
func Router(app *fiber.App, deps Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	app.Use(SessionMiddleware(deps.Sessions, deps.SessionTTL, deps.CookieSecure))
	if deps.CSRF {
		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "form:" + views.CSRFField,
			CookieName:     "hillary_csrf",
			CookieSameSite: "Lax",
			CookieSecure:   deps.CookieSecure,
			CookieHTTPOnly: true,
			Expiration:     deps.SessionTTL,
			ContextKey:     csrfContextKey,
			ErrorHandler: func(_ *fiber.Ctx, _ error) error {
				return fiber.NewError(fiber.StatusForbidden, "El formulario expiró o no es válido. Recargue la página e intente de nuevo.")
			},
		}))
	}

	authHandler := NewAuthHandler(deps.API, deps.Sessions)
	app.Get("/", authHandler.Home)
	app.Get("/auth/login", authHandler.LoginForm)
	app.Post("/auth/login", authHandler.Login)
	app.Post("/auth/logout", authHandler.Logout)

	companies := app.Group("/companies")
	companyHandler := NewCompanyHandler(deps.API)
	companies.Get("/", companyHandler.Index)
	companies.Get("/create", companyHandler.CreateForm)
	companies.Post("/create", companyHandler.Create)
	companies.Get("/:id", companyHandler.Details)
	companies.Get("/:id/edit", companyHandler.EditForm)
	companies.Post("/:id/edit", companyHandler.Edit)
	companies.Get("/:id/delete", companyHandler.DeleteConfirm)
	companies.Post("/:id/delete", companyHandler.Delete)
	companies.Post("/:id/status", companyHandler.ChangeStatus)

	tasks := app.Group("/tasks", RequireLogin)
	taskHandler := NewTaskHandler(deps.API)
	tasks.Get("/", taskHandler.Index)
	tasks.Get("/mine", taskHandler.Mine)
	tasks.Get("/create", taskHandler.CreateForm)
	tasks.Post("/create", taskHandler.Create)
	tasks.Get("/:id", taskHandler.Details)
	tasks.Get("/:id/edit", taskHandler.EditForm)
	tasks.Post("/:id/edit", taskHandler.Edit)
	tasks.Get("/:id/delete", taskHandler.DeleteConfirm)
	tasks.Post("/:id/delete", taskHandler.Delete)

	users := app.Group("/users")
	userHandler := NewUserHandler(deps.API)
	users.Get("/register", userHandler.RegisterForm)
	users.Post("/register", userHandler.Register)
	users.Get("/", RequireLogin, userHandler.Index)
	users.Get("/create", RequireLogin, userHandler.CreateForm)
	users.Post("/create", RequireLogin, userHandler.Create)
	users.Get("/:id", RequireLogin, userHandler.Details)
}
