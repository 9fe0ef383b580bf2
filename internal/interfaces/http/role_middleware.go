package http

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/foxred/hillary/internal/application/dto"
)

// RequireRole restringe la ruta a los role_id indicados. Debe ir DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 → no hay identidad en el contexto.
//   - 403 → el token no trae rol.
//   - 403 con required_roles y your_role → el rol no está permitido.
func RequireRole(roles ...int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := GetIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "No autenticado. Por favor inicie sesión.",
			})
		}
		if id.RoleID == 0 {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "No se pudo obtener el rol del usuario.",
			})
		}
		if !slices.Contains(roles, id.RoleID) {
			return c.Status(fiber.StatusForbidden).JSON(dto.RoleErrorResponse{
				Code:          "FORBIDDEN",
				Message:       "No tiene permisos para realizar esta acción.",
				RequiredRoles: roles,
				YourRole:      id.RoleID,
			})
		}
		return c.Next()
	}
}
