package routes

import (
	"time"

	"github.com/dkotenko/filegate/internal/config"
	"github.com/dkotenko/filegate/internal/handlers"
	"github.com/dkotenko/filegate/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	fileHandler *handlers.FileHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api/v1")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Files — bearer token required
	files := api.Group("/files", middleware.JWTProtected(cfg))
	files.Post("/upload", fileHandler.Upload)
	files.Get("/", fileHandler.List)
	files.Get("/:id/download", fileHandler.Download)
	files.Get("/:id/metadata", fileHandler.Metadata)
	files.Patch("/:id", fileHandler.Rename)
	files.Delete("/:id", fileHandler.Delete)

	// Admin — bearer token plus role gate
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:id", adminHandler.GetUserDetails)
	admin.Patch("/users/:id/toggle-status", adminHandler.ToggleUserStatus)
	admin.Patch("/users/:id/role", adminHandler.ChangeUserRole)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/files", adminHandler.ListFiles)
	admin.Delete("/files/:id", adminHandler.DeleteFile)
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Get("/top-users", adminHandler.TopUsers)
}
