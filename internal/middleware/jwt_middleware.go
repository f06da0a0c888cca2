package middleware

import (
	"strings"

	"setlist/internal/apperror"
	"setlist/internal/models"
	"setlist/internal/services"

	"github.com/gofiber/fiber/v2"
)

const userKey = "user"

// AuthenticateCommon resolves the caller from a Bearer token. Any authenticated
// user passes.
func AuthenticateCommon(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperror.Unauthenticated("Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return apperror.Unauthenticated("Authorization header format must be 'Bearer <token>'")
		}

		user, err := authService.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			return err
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// AuthenticateArtist lets only artists and admins through. It must run after
// AuthenticateCommon.
func AuthenticateArtist() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return apperror.Unauthenticated("authentication required")
		}
		if !user.Role.CanPublish() {
			return apperror.Forbidden()
		}
		return c.Next()
	}
}

// CurrentUser returns the caller stored by AuthenticateCommon, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
