package middleware

import (
	"fadem-backend/internal/auth"
	"fadem-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const sessionLocal = "session"

// RequireAuth verifies the bearer token and stores the session in Locals.
// Returns 401 with the standard error format when missing or invalid.
func RequireAuth(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := svc.VerifierToken(c.Context(), auth.BearerToken(c))
		if err != nil {
			return response.Unauthorized(c, err.Error())
		}
		c.Locals(sessionLocal, session)
		return c.Next()
	}
}

// GetSession returns the authenticated session from Locals (nil if absent).
func GetSession(c *fiber.Ctx) *auth.Session {
	if s, ok := c.Locals(sessionLocal).(*auth.Session); ok {
		return s
	}
	return nil
}
