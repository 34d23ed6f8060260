package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestTimeout bounds the request context with d. Database and Redis calls
// made with c.UserContext() are cancelled when the deadline passes, and a
// handler that fails after the deadline is answered with 504.
func RequestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && (err != nil || c.Response().StatusCode() >= fiber.StatusInternalServerError) {
			Logger.WarnContext(ctx, "request deadline exceeded", "path", c.Path(), "timeout", d.String())
			return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
				"error": "request timed out",
				"code":  "TIMEOUT",
			})
		}
		return err
	}
}
