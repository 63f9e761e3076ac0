package meta

import (
	"github.com/gofiber/fiber/v2"
)

// EnumHandler serves a configured enumeration as a plain JSON array; the
// editor populates its dropdowns from these.
func EnumHandler(values []string) fiber.Handler {
	list := make([]string, len(values))
	copy(list, values)
	return func(c *fiber.Ctx) error {
		return c.JSON(list)
	}
}
