// middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"snake-arena/models"
	"snake-arena/services"

	"github.com/gofiber/fiber/v2"
)

// UserLocalsKey is the fiber.Ctx.Locals key holding the authenticated
// *models.User.
const UserLocalsKey = "user"

// TokenVerifier turns a bearer token into a user ID.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// UserLoader resolves the user a token was issued for.
type UserLoader interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token
// and stores the token's user in the context for handlers.
func RequireAuth(tokens TokenVerifier, users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "not authenticated",
			})
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return invalidCredentials(c)
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			slog.DebugContext(c.UserContext(), "bearer token rejected", "path", c.Path(), "error", err)
			return invalidCredentials(c)
		}

		user, err := users.GetUser(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return invalidCredentials(c)
			}
			slog.ErrorContext(c.UserContext(), "load token user", "user_id", userID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		c.Locals(UserLocalsKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(UserLocalsKey).(*models.User)
	return u
}

func invalidCredentials(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "invalid authentication credentials",
	})
}
