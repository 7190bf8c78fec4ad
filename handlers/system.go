package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupSystemRoutes mounts the health probe and the API index.
func SetupSystemRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": "unreachable",
			})
		}
		return c.JSON(fiber.Map{"status": "healthy", "database": "ok"})
	})

	app.Get("/api", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name": "Snake Arena API",
			"endpoints": fiber.Map{
				"auth":        "/api/auth",
				"game":        "/api/game",
				"leaderboard": "/api/leaderboard",
				"todos":       "/api/todos",
			},
		})
	})
}
