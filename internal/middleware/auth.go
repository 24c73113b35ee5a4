package middleware

import (
	"errors"

	"github.com/dkotenko/filegate/internal/config"
	"github.com/dkotenko/filegate/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTProtected authenticates the bearer token. Authorization (role, token
// type) is checked separately by CurrentUser and AdminRequired.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// AuthUser is the identity extracted from verified access-token claims.
type AuthUser struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// CurrentUser extracts the authenticated user from JWT claims in context.
// Refresh tokens are rejected: they carry no authorization.
func CurrentUser(c *fiber.Ctx) (*AuthUser, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("missing token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return nil, errors.New("not an access token")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("missing sub claim")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("malformed sub claim")
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &AuthUser{ID: id, Email: email, Role: role}, nil
}
