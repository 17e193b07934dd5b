package middleware

import (
	"log"
	"strings"

	"greenleaf/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the http-only cookie carrying the session
// token.
const SessionCookie = "session"

// publicPaths are reachable without a session. Product browsing and the
// auth endpoints stay open; everything else requires a valid token.
var publicPaths = []string{
	"/",
	"/health",
	"/login",
	"/register",
	"/api/auth/login",
	"/api/auth/register",
}

var publicPrefixes = []string{
	"/api/products",
}

func isPublic(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// SessionGuard requires a valid, unexpired session token for any path
// outside the public allowlist. The token is read from the session cookie,
// falling back to an Authorization bearer header. API requests get a 401
// JSON envelope; page requests are redirected to the login page.
func SessionGuard(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if isPublic(path) {
			return c.Next()
		}

		tokenString := c.Cookies(SessionCookie)
		if tokenString == "" {
			if header := c.Get("Authorization"); header != "" {
				parts := strings.SplitN(header, " ", 2)
				if len(parts) == 2 && parts[0] == "Bearer" {
					tokenString = parts[1]
				}
			}
		}
		if tokenString == "" {
			return reject(c, path, "missing session token")
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("Session validation failed: %v", err)
			return reject(c, path, "invalid or expired session")
		}

		c.Locals("user_id", claims["user_id"])
		c.Locals("email", claims["email"])
		if admin, ok := claims["admin"].(bool); ok {
			c.Locals("admin", admin)
		}
		return c.Next()
	}
}

// AdminRequired gates a route group on the admin session claim. Must run
// after SessionGuard.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if admin, ok := c.Locals("admin").(bool); !ok || !admin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   "admin access required",
			})
		}
		return c.Next()
	}
}

func reject(c *fiber.Ctx, path, message string) error {
	if strings.HasPrefix(path, "/api/") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   message,
		})
	}
	return c.Redirect("/login", fiber.StatusFound)
}
