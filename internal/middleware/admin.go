package middleware

import (
	"github.com/dkotenko/filegate/internal/dto"
	"github.com/dkotenko/filegate/internal/models"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired gates a route on the role claim of the already-authenticated
// token. This is an authorization check layered on top of JWTProtected's
// authentication check: a valid token with the wrong role gets 403, not 401.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if user.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
