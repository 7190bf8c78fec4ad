// handlers/game.go
package handlers

import (
	"snake-arena/middleware"
	"snake-arena/models"
	"snake-arena/services"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultActiveLimit           = 20
	defaultSessionLeaderboardLim = 50
)

type endGameRequest struct {
	Score    *int64 `json:"score" validate:"required,min=0"`
	Duration *int64 `json:"duration" validate:"omitempty,min=0"`
}

func SetupGameRoutes(app *fiber.App, gameService *services.GameService, requireAuth fiber.Handler) {
	// Public: spectating and rankings.
	app.Get("/api/game/active", func(c *fiber.Ctx) error {
		limit, err := queryLimit(c, defaultActiveLimit)
		if err != nil {
			return respondError(c, err)
		}
		sessions, err := gameService.ListActive(c.UserContext(), limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(sessions)
	})

	app.Get("/api/game/leaderboard", func(c *fiber.Ctx) error {
		limit, err := queryLimit(c, defaultSessionLeaderboardLim)
		if err != nil {
			return respondError(c, err)
		}
		board, err := gameService.SessionLeaderboard(c.UserContext(), limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(board)
	})

	app.Get("/api/game/user/:id/stats", func(c *fiber.Ctx) error {
		userID, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		stats, err := gameService.Stats(c.UserContext(), userID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(stats)
	})

	// Secured: session lifecycle.
	secured := app.Group("/api/game")

	secured.Post("/start", requireAuth, func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		mode, err := queryMode(c)
		if err != nil {
			return respondError(c, err)
		}
		m := models.GameModeWalls
		if mode != nil {
			m = *mode
		}

		session, err := gameService.StartSession(c.UserContext(), user, m)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(session.View(user.Username))
	})

	secured.Post("/:id/end", requireAuth, func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		sessionID, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req endGameRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}

		session, err := gameService.EndSession(c.UserContext(), sessionID, user.ID, *req.Score, req.Duration)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(session.View(user.Username))
	})
}
