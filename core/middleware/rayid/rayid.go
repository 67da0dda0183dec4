// Package rayid provides request ID (RayID) middleware for Fiber.
//
// Every incoming request gets a unique identifier, stored in the request
// locals and echoed in the X-Ray-Id response header so logs and responses
// can be correlated.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the ray ID.
const HeaderName = "X-Ray-Id"

// LocalsKey is the fiber locals key under which the ray ID is stored.
const LocalsKey = "ray_id"

// New creates the ray ID middleware.
// An inbound X-Ray-Id header is honored so upstream proxies can propagate
// their own trace IDs; otherwise a fresh UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
