package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foxred/hillary/internal/application/dto"
	"github.com/foxred/hillary/internal/domain/access"
	"github.com/foxred/hillary/pkg/jwt"
)

// LocalIdentity clave de c.Locals con la jwt.Identity del token.
const LocalIdentity = "identity"

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
func AuthMiddleware(opts jwt.Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "No autenticado. Por favor inicie sesión."})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		claims, err := jwt.Parse(opts, strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalIdentity, claims.Identity())
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del token (después de AuthMiddleware).
func GetIdentity(c *fiber.Ctx) (jwt.Identity, bool) {
	id, ok := c.Locals(LocalIdentity).(jwt.Identity)
	return id, ok
}

// GetUserID devuelve el user_id del token, 0 si no hay.
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := GetIdentity(c)
	return id.UserID
}

// GetCompanyID devuelve el company_id del token, 0 si no hay.
func GetCompanyID(c *fiber.Ctx) int64 {
	id, _ := GetIdentity(c)
	return id.CompanyID
}

// GetRole devuelve el role_id del token, 0 si no hay.
func GetRole(c *fiber.Ctx) int64 {
	id, _ := GetIdentity(c)
	return id.RoleID
}

// ActorFrom arma el access.Actor con el que los casos de uso filtran por empresa y rol.
func ActorFrom(c *fiber.Ctx) access.Actor {
	id, _ := GetIdentity(c)
	return access.Actor{UserID: id.UserID, CompanyID: id.CompanyID, RoleID: id.RoleID}
}
