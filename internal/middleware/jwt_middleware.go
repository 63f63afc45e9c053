package middleware

import (
	"log"
	"strings"

	"walkup/internal/models"
	"walkup/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TokenCookie is the http-only cookie the session token travels in.
const TokenCookie = "token"

// Keys under which the authenticated identity is stored in fiber Locals.
const (
	LocalUserID   = "user_id"
	LocalUserRole = "role"
	LocalEmail    = "email"
	LocalUsername = "userName"
)

func extractToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(TokenCookie); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// AuthRequired validates the session token from the cookie or bearer header
// and attaches the decoded identity to the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorised user!",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("Session token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}

		c.Locals(LocalUserID, claims["id"])
		c.Locals(LocalUserRole, claims["role"])
		c.Locals(LocalEmail, claims["email"])
		c.Locals(LocalUsername, claims["userName"])

		return c.Next()
	}
}

// AdminOnly rejects requests whose attached identity is not an admin. It must
// run after AuthRequired.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalUserRole).(string)
		if role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Admin access required",
			})
		}
		return c.Next()
	}
}
