package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxred/hillary/internal/application/auth"
	"github.com/foxred/hillary/internal/application/usecase"
	"github.com/foxred/hillary/internal/domain/entity"
	"github.com/foxred/hillary/internal/infrastructure/storage"
	"github.com/foxred/hillary/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	CompanyUC   *usecase.CompanyUseCase
	RoleUC      *usecase.RoleUseCase
	UserUC      *usecase.UserUseCase
	TaskUC      *usecase.TaskUseCase
	AuthUC      *auth.AuthUseCase
	JWT         jwt.Options
}

// NewRouterDeps arma los casos de uso sobre los repositorios abiertos.
func NewRouterDeps(serviceName string, repos *storage.Repositories, jwtOpts jwt.Options, emailFormat string) RouterDeps {
	emails := usecase.NewEmailGenerator(repos.Users, emailFormat)
	return RouterDeps{
		ServiceName: serviceName,
		CompanyUC:   usecase.NewCompanyUseCase(repos.Companies),
		RoleUC:      usecase.NewRoleUseCase(repos.Roles),
		UserUC:      usecase.NewUserUseCase(repos.Users, repos.Companies, emails),
		TaskUC:      usecase.NewTaskUseCase(repos.Tasks),
		AuthUC:      auth.NewAuthUseCase(repos.Users, jwtOpts),
		JWT:         jwtOpts,
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWT)
	anyRole := RequireRole(entity.RoleManager, entity.RoleMember)
	managerOnly := RequireRole(entity.RoleManager)

	// Companies (público)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/search", companyHandler.Search)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)
	companies.Patch("/:id/status", companyHandler.ChangeStatus)

	// Roles (público)
	roles := api.Group("/roles")
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Post("/search", roleHandler.Search)
	roles.Post("/", roleHandler.Create)
	roles.Get("/:id", roleHandler.GetByID)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.Delete)

	// Users: login y registro públicos, el resto con token y rol
	users := api.Group("/users")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	users.Post("/login", authHandler.Login)
	users.Post("/register", authHandler.Register)
	users.Get("/me", requireAuth, anyRole, authHandler.Me)

	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/search", requireAuth, anyRole, userHandler.Search)
	users.Post("/", requireAuth, anyRole, userHandler.Create)
	users.Get("/:id", requireAuth, anyRole, userHandler.GetByID)
	users.Put("/:id", requireAuth, anyRole, userHandler.Update)
	users.Delete("/:id", requireAuth, managerOnly, userHandler.Delete)
	users.Patch("/:id/change-status", requireAuth, managerOnly, userHandler.ChangeStatus)

	// Tasks (cualquier usuario autenticado)
	tasks := api.Group("/tasks", requireAuth)
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks.Get("/mine", taskHandler.Mine)
	tasks.Post("/search", taskHandler.Search)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/:id", taskHandler.GetByID)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)
}
