package handlers

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"snake-arena/models"
	"snake-arena/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names rather than Go ones.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func describeValidation(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "min", "max":
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is not a valid %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// bindJSON parses the request body into dst and validates it.
func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", services.ErrValidation)
	}
	return validate.Struct(dst)
}

// queryLimit reads ?limit=, falling back to def, and enforces [1, 100].
func queryLimit(c *fiber.Ctx, def int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < services.MinLeaderboardLimit || n > services.MaxLeaderboardLimit {
		return 0, fmt.Errorf("%w: limit must be an integer between %d and %d",
			services.ErrValidation, services.MinLeaderboardLimit, services.MaxLeaderboardLimit)
	}
	return n, nil
}

// queryMode reads the optional ?mode= filter.
func queryMode(c *fiber.Ctx) (*models.GameMode, error) {
	raw := c.Query("mode")
	if raw == "" {
		return nil, nil
	}
	mode, err := models.ParseGameMode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: mode must be one of [walls pass-through]", services.ErrValidation)
	}
	return &mode, nil
}

// pathID parses a positive integer route parameter.
func pathID(c *fiber.Ctx, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a positive integer", services.ErrValidation, name)
	}
	return uint(n), nil
}
