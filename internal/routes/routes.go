package routes

import (
	"time"

	"github.com/familyshare/family-share-backend/internal/config"
	"github.com/familyshare/family-share-backend/internal/handlers"
	"github.com/familyshare/family-share-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	familyHandler *handlers.FamilyHandler,
	inviteHandler *handlers.InviteHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/health", healthHandler.Check)

	// Identity — public, with a stricter limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	app.Post("/create-account", authLimiter, authHandler.CreateAccount)
	app.Post("/auth/password", authLimiter, authHandler.AuthenticateWithPassword)
	app.Post("/auth/google", authLimiter, authHandler.AuthenticateWithGoogle)

	protected := middleware.JWTProtected(cfg)

	app.Get("/profile", protected, authHandler.GetProfile)

	app.Post("/family", protected, familyHandler.Create)
	app.Get("/family", protected, familyHandler.List)
	app.Put("/family/:id", protected, familyHandler.Update)
	app.Patch("/family/:id/transfer-ownership", protected, familyHandler.TransferOwnership)
	app.Delete("/family/:id/remove-member/:memberId", protected, familyHandler.RemoveMember)

	app.Post("/invites", protected, inviteHandler.Create)
	app.Get("/invites", protected, inviteHandler.List)
	app.Patch("/invites/:id/accept", protected, inviteHandler.Accept)
	app.Patch("/invites/:id/reject", protected, inviteHandler.Reject)

	app.Post("/payments", protected, paymentHandler.Create)
	app.Get("/payments/history", protected, paymentHandler.History)
	app.Delete("/payments/:paymentId", protected, paymentHandler.Reverse)
}
