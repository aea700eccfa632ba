package api

import (
	"log"

	"github.com/example/task-manager/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// TokenHeader is the request header carrying the signed token.
	// The original wire contract uses a custom header, not a Bearer scheme.
	TokenHeader = "token"

	// UserContextKey is the key used to store claims in the Fiber context.
	UserContextKey = "user"
)

// AuthMiddleware validates the token header and stores the caller's
// identity in the request context. A missing token and an invalid token
// are distinguished only in the response body and logs; both are 401.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(TokenHeader)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).SendString("Token not found in request")
		}

		claims, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil {
			log.Printf("[api] Token rejected: %v", err)
			return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}
