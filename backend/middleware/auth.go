package middleware

import (
	"strings"

	"coursecatalog/backend/config"
	"coursecatalog/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey holds the caller id proven by a bearer token.
const UserIDKey = "token_user_id"

// Identity verifies an optional bearer token. Requests without one pass
// through and are identified by their query parameters instead.
func Identity(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.JWTSecret == "" || !strings.HasPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ") {
			return c.Next()
		}

		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, err.Error())
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// CallerID returns the token user id when present, else the named query
// parameter.
func CallerID(c *fiber.Ctx, param string) string {
	if id, ok := c.Locals(UserIDKey).(string); ok && id != "" {
		return id
	}
	return c.Query(param)
}
