package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"snake-arena/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{services.ErrSessionNotActive, fiber.StatusConflict},
	{services.ErrConflict, fiber.StatusConflict},
	{services.ErrUnauthorized, fiber.StatusUnauthorized},
	{services.ErrForbidden, fiber.StatusForbidden},
	{services.ErrNotFound, fiber.StatusNotFound},
	{services.ErrValidation, fiber.StatusUnprocessableEntity},
}

// respondError writes {"error": msg} with the status matching err. Unknown
// errors are logged and hidden behind a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	status, msg := classify(err)
	if status >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func classify(err error) (int, string) {
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.status, publicMessage(err, s.err)
		}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fiber.StatusUnprocessableEntity, describeValidation(verrs)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}
	return fiber.StatusInternalServerError, "internal server error"
}

// publicMessage drops the "<sentinel>: " prefix added when services wrap a
// sentinel with detail, so clients see only the detail.
func publicMessage(err, sentinel error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, sentinel.Error()+": "); i >= 0 {
		return msg[i+len(sentinel.Error())+2:]
	}
	return msg
}

// errorHandler renders errors that escape handlers (unknown routes, body
// limits, panics turned into errors by the recover middleware).
func errorHandler(c *fiber.Ctx, err error) error {
	return respondError(c, err)
}
