package routes

import (
	"time"

	"github.com/fixmate/repair-backend/internal/config"
	"github.com/fixmate/repair-backend/internal/handlers"
	"github.com/fixmate/repair-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	repairHandler *handlers.RepairHandler,
	adminHandler *handlers.AdminHandler,
	reviewHandler *handlers.ReviewHandler,
	fileHandler *handlers.FileHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limit: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/health", healthHandler.Check)

	// Credential endpoints get a stricter limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	app.Post("/token", authLimiter, authHandler.Token)
	app.Post("/auth/register", authLimiter, authHandler.Register)

	jwt := middleware.JWTProtected(cfg)

	// User account
	app.Get("/user/me", jwt, userHandler.Me)
	app.Get("/user/admin/me", jwt, middleware.AdminRequired(), userHandler.AdminMe)
	app.Post("/user/telegram", jwt, userHandler.LinkTelegram)

	// Repair requests. GET /repairs doubles as the unauthenticated
	// Telegram bot lookup when tg_id is present.
	app.Post("/repair/add", jwt, repairHandler.Create)
	app.Get("/repairs", middleware.JWTProtectedUnless(cfg, func(c *fiber.Ctx) bool {
		return c.Query("tg_id") != ""
	}), repairHandler.List)
	app.Get("/repair/:id", jwt, repairHandler.Get)
	app.Put("/repair/:id", jwt, repairHandler.Update)
	app.Delete("/repair/:id", jwt, repairHandler.Delete)

	// Status changes (admin only)
	app.Patch("/requests/:id/status", jwt, middleware.AdminRequired(), adminHandler.UpdateStatus)

	// Admin panel
	admin := app.Group("/admin", jwt, middleware.AdminRequired())
	admin.Get("/repairs", adminHandler.ListAll)
	admin.Get("/self/repairs", adminHandler.ListAssigned)
	admin.Post("/repair/:id/claim", adminHandler.Claim)
	admin.Post("/repair/:id/comment", adminHandler.Comment)
	admin.Get("/repair/:id/comments", adminHandler.ListComments)

	// Reviews
	app.Post("/reviews", jwt, reviewHandler.Create)
	app.Get("/reviews", reviewHandler.List)

	// Stored photos
	app.Get("/files/:key", fileHandler.Download)
}
