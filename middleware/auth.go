package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/beridzemate00/nieghbornews/auth"
	"github.com/beridzemate00/nieghbornews/model"
)

// AuthRequired verifies the bearer token and resolves it to a live user
// record, which is stored in c.Locals("user") for downstream handlers.
func AuthRequired(db *gorm.DB, tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(401).JSON(fiber.Map{"error": "Token is missing"})
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		userID, err := tokens.Verify(tokenStr)
		if err != nil {
			if errors.Is(err, auth.ErrExpired) {
				return c.Status(401).JSON(fiber.Map{"error": "Token has expired"})
			}
			return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
		}

		// Stale tokens for deleted users are rejected here.
		var user model.User
		if err := db.First(&user, userID).Error; err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// RoleRequired gates a route on the resolved user's role. Compose after
// AuthRequired.
func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(model.User)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "Admin access required"})
		}
		for _, r := range roles {
			if user.Role == r {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Admin access required"})
	}
}

// CurrentUser returns the user resolved by AuthRequired.
func CurrentUser(c *fiber.Ctx) model.User {
	user, _ := c.Locals("user").(model.User)
	return user
}
