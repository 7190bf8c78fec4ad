package handlers

import (
	"fmt"
	"strings"

	"snake-arena/middleware"
	"snake-arena/models"
	"snake-arena/services"

	"github.com/gofiber/fiber/v2"
)

type signupRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message     string       `json:"message"`
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

// SetupAuthRoutes mounts signup, login and the current-user endpoint.
func SetupAuthRoutes(app *fiber.App, authService *services.AuthService, tokens *services.TokenService, requireAuth fiber.Handler) {
	grp := app.Group("/api/auth")

	grp.Post("/signup", func(c *fiber.Ctx) error {
		var req signupRequest
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, fmt.Errorf("%w: malformed request body", services.ErrValidation))
		}
		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)
		if err := validate.Struct(&req); err != nil {
			return respondError(c, err)
		}

		user, err := authService.Register(c.UserContext(), req.Username, req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}
		token, err := tokens.Issue(user.ID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(authResponse{
			Message:     "User created successfully",
			AccessToken: token,
			User:        user,
		})
	})

	grp.Post("/login", func(c *fiber.Ctx) error {
		var req loginRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}

		user, err := authService.Authenticate(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return respondError(c, err)
		}
		token, err := tokens.Issue(user.ID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(authResponse{
			Message:     "Login successful",
			AccessToken: token,
			User:        user,
		})
	})

	grp.Get("/me", requireAuth, func(c *fiber.Ctx) error {
		return c.JSON(middleware.CurrentUser(c))
	})
}
