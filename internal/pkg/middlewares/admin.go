package middlewares

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/owl-eval/backend/internal/constant"
	"github.com/owl-eval/backend/internal/pkg/owerr"
)

// AdminKey guards the admin route group with a shared key. An empty configured
// key disables the whole group.
func AdminKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return owerr.ErrNotFound
		}
		got := c.Get(constant.AdminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return owerr.New(fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid admin key")
		}
		return c.Next()
	}
}
