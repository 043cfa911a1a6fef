package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-identity/internal/application/dto"
	"github.com/jhoicas/marketplace-identity/internal/domain"
	"github.com/jhoicas/marketplace-identity/internal/domain/policy"
	"github.com/jhoicas/marketplace-identity/pkg/jwt"
)

// Locals keys para la cuenta autenticada en Fiber.
const (
	LocalAccountID = "account_id"
	LocalRole      = "role"
	LocalAccount   = "account"
)

// AccountResolver carga la cuenta del token (implementado por account.LifecycleUseCase).
type AccountResolver interface {
	GetSelf(ctx context.Context, actor policy.Actor) (*dto.AccountResponse, error)
}

// AuthMiddleware valida el Bearer Token JWT y carga la cuenta actual en c.Locals.
// Rol y estado se leen del store, no del token, para que los cambios apliquen de inmediato.
func AuthMiddleware(jwtSecret string, resolver AccountResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Not authorized, no token"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Not authorized, no token"})
		}
		accountID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Not authorized, token failed"})
		}
		account, err := resolver.GetSelf(c.UserContext(), policy.Actor{ID: accountID, Role: role})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Not authorized, user not found"})
			}
			return writeError(c, err)
		}
		c.Locals(LocalAccountID, account.ID)
		c.Locals(LocalRole, account.Role)
		c.Locals(LocalAccount, account)
		return c.Next()
	}
}

// RequireRole permite el paso solo si la cuenta autenticada tiene alguno de los roles.
// Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "la cuenta no tiene rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Not authorized as an admin."})
	}
}

// GetAccountID devuelve el id de la cuenta autenticada.
func GetAccountID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalAccountID).(string)
	return s
}

// GetRole devuelve el rol de la cuenta autenticada.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetAccount devuelve la cuenta autenticada ya saneada.
func GetAccount(c *fiber.Ctx) *dto.AccountResponse {
	a, _ := c.Locals(LocalAccount).(*dto.AccountResponse)
	return a
}

// GetActor construye el actor para la política de autorización.
func GetActor(c *fiber.Ctx) policy.Actor {
	return policy.Actor{ID: GetAccountID(c), Role: GetRole(c)}
}
