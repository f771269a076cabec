package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"coparent/internal/logger"
	"coparent/internal/model"
	"coparent/internal/repository"
)

// UserLocalKey holds the authenticated *model.User in Fiber locals.
const UserLocalKey = "user"

type TokenVerifier interface {
	// Verify returns the user ID the token was issued for.
	Verify(token string) (string, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Auth requires "Authorization: Bearer <token>" and loads the token's user.
// Failures are returned as 401 fiber errors for the global error handler.
func Auth(verifier TokenVerifier, users UserFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		userID, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			logger.FromContext(c.UserContext()).Debug("token rejected", slog.Any("err", err))
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		user, err := users.FindByID(c.UserContext(), userID)
		if errors.Is(err, repository.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "user no longer exists")
		}
		if err != nil {
			return err
		}

		c.Locals(UserLocalKey, user)
		c.SetUserContext(logger.IntoContext(c.UserContext(),
			logger.FromContext(c.UserContext()).With("user_id", user.ID)))
		return c.Next()
	}
}

// CurrentUser returns the user stored by Auth, or nil on public routes.
func CurrentUser(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(UserLocalKey).(*model.User)
	return u
}
