package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger writes one structured line per request once the handler chain
// has finished.
func RequestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The app error handler has not run yet; report what it will send.
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.IP(),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			log.ErrorContext(c.UserContext(), "request completed", attrs...)
		case status >= fiber.StatusBadRequest:
			log.WarnContext(c.UserContext(), "request completed", attrs...)
		default:
			log.InfoContext(c.UserContext(), "request completed", attrs...)
		}
		return err
	}
}
