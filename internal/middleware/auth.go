// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"net/url"
	"strconv"
	"strings"

	"quill/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenCookie is the cookie used by browser clients to carry the session token.
const TokenCookie = "quill_token"

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// extractToken pulls the raw JWT out of the Authorization header or, failing
// that, the session cookie.
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Cookies(TokenCookie)
}

// parseUserID validates the token string and returns the user ID from its
// subject claim.
func parseUserID(tokenString string) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userIDVal), true
}

// LoginRequired enforces authentication for protected routes. Unauthenticated
// requests are redirected to the login page with the original path preserved
// in the "next" query parameter.
func LoginRequired(c *fiber.Ctx) error {
	tokenString := extractToken(c)
	if tokenString == "" {
		return redirectToLogin(c)
	}

	userID, ok := parseUserID(tokenString)
	if !ok {
		return redirectToLogin(c)
	}

	c.Locals("userID", userID)
	return c.Next()
}

// AuthRequired enforces authentication for API routes, responding with 401
// JSON instead of a redirect.
func AuthRequired(c *fiber.Ctx) error {
	tokenString := extractToken(c)
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization required",
		})
	}

	userID, ok := parseUserID(tokenString)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	c.Locals("userID", userID)
	return c.Next()
}

// OptionalAuth populates the viewer from a token when one is present but
// never rejects the request. Public pages use it to personalize responses.
func OptionalAuth(c *fiber.Ctx) error {
	tokenString := extractToken(c)
	if tokenString != "" {
		if userID, ok := parseUserID(tokenString); ok {
			c.Locals("userID", userID)
		}
	}
	return c.Next()
}

func redirectToLogin(c *fiber.Ctx) error {
	next := url.QueryEscape(c.OriginalURL())
	return c.Redirect("/auth/login?next="+next, fiber.StatusFound)
}

// ViewerID returns the authenticated user ID stored by the auth middleware,
// or zero when the request is anonymous.
func ViewerID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}
