package handlers

import (
	"snake-arena/middleware"
	"snake-arena/models"
	"snake-arena/services"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultLeaderboardLimit = 10
	topScoresLimit          = 10
)

type submitScoreRequest struct {
	Score    *int64 `json:"score" validate:"required,min=0"`
	Mode     string `json:"mode" validate:"omitempty,oneof=walls pass-through"`
	Duration *int64 `json:"duration" validate:"omitempty,min=0"`
}

func SetupLeaderboardRoutes(app *fiber.App, leaderboard *services.LeaderboardService, requireAuth fiber.Handler) {
	grp := app.Group("/api/leaderboard")

	grp.Get("/", func(c *fiber.Ctx) error {
		mode, err := queryMode(c)
		if err != nil {
			return respondError(c, err)
		}
		limit, err := queryLimit(c, defaultLeaderboardLimit)
		if err != nil {
			return respondError(c, err)
		}
		entries, err := leaderboard.Top(c.UserContext(), mode, limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(entries)
	})

	grp.Get("/top", func(c *fiber.Ctx) error {
		mode, err := queryMode(c)
		if err != nil {
			return respondError(c, err)
		}
		entries, err := leaderboard.Top(c.UserContext(), mode, topScoresLimit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(entries)
	})

	grp.Get("/user/:id", func(c *fiber.Ctx) error {
		userID, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		limit, err := queryLimit(c, defaultLeaderboardLimit)
		if err != nil {
			return respondError(c, err)
		}
		entries, err := leaderboard.UserEntries(c.UserContext(), userID, limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(entries)
	})

	grp.Post("/", requireAuth, func(c *fiber.Ctx) error {
		var req submitScoreRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		mode, err := models.ParseGameMode(req.Mode)
		if err != nil {
			return respondError(c, err)
		}
		var duration int64
		if req.Duration != nil {
			duration = *req.Duration
		}

		entry, err := leaderboard.Submit(c.UserContext(), middleware.CurrentUser(c), *req.Score, mode, duration)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Score submitted successfully",
			"id":      entry.ID,
		})
	})
}
