package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-identity/internal/application/account"
	"github.com/jhoicas/marketplace-identity/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AccountUC *account.LifecycleUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	h := NewAccountHandler(deps.AccountUC)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Register)
	authGroup.Post("/login", h.Login)

	// Rutas protegidas (requieren Bearer Token)
	auth := AuthMiddleware(deps.JWTSecret, deps.AccountUC)
	authGroup.Get("/me", auth, h.Me)

	// Solo Admin
	adminOnly := RequireRole(entity.RoleAdmin)
	authGroup.Get("/all", auth, adminOnly, h.ListAll)
	authGroup.Get("/admin/:id", auth, adminOnly, h.GetByID)

	// Propia cuenta o Admin; la política la aplica el caso de uso
	authGroup.Put("/:id", auth, h.Update)
	authGroup.Delete("/:id", auth, h.Delete)
}
