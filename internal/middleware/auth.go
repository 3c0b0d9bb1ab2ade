package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Kgee7/EarnBull/internal/config"
)

const AuthUserKey = "auth_user"

// AuthUser is the identity asserted by the sign-in provider's token. The
// subject is the provider account id; the profile row is resolved lazily by
// handlers.
type AuthUser struct {
	GoogleID    string
	Email       string
	DisplayName string
}

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Auth validates the HS256 bearer token minted at sign-in and stores the
// asserted identity in locals.
func Auth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}

		parsed := &claims{}
		token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.Server.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		if parsed.Subject == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token missing subject",
			})
		}

		c.Locals(AuthUserKey, &AuthUser{
			GoogleID:    parsed.Subject,
			Email:       parsed.Email,
			DisplayName: parsed.Name,
		})

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// GetAuthUser returns the identity placed in locals by Auth.
func GetAuthUser(c *fiber.Ctx) *AuthUser {
	user, ok := c.Locals(AuthUserKey).(*AuthUser)
	if !ok {
		return nil
	}
	return user
}
