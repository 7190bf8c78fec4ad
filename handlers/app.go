package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"

	"snake-arena/config"
	"snake-arena/middleware"
	"snake-arena/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	DB          *gorm.DB
	Auth        *services.AuthService
	Tokens      *services.TokenService
	Games       *services.GameService
	Leaderboard *services.LeaderboardService
	Todos       *services.TodoService
}

// NewApp builds the fiber application with middleware and every route mounted.
func NewApp(cfg *config.Config, svc Services, log *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "snake-arena",
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))

	origins := strings.Join(cfg.CORSOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		// fiber refuses credentials together with a wildcard origin.
		AllowCredentials: !slices.Contains(cfg.CORSOrigins, "*"),
		MaxAge:           86400,
	}))

	requireAuth := middleware.RequireAuth(svc.Tokens, svc.Auth)

	SetupSystemRoutes(app, svc.DB)
	SetupAuthRoutes(app, svc.Auth, svc.Tokens, requireAuth)
	SetupGameRoutes(app, svc.Games, requireAuth)
	SetupLeaderboardRoutes(app, svc.Leaderboard, requireAuth)
	SetupTodoRoutes(app, svc.Todos)

	if cfg.StaticDir != "" {
		mountFrontend(app, cfg.StaticDir, log)
	}

	return app
}

// mountFrontend serves the built single-page frontend. Unknown paths outside
// /api fall back to index.html so client-side routing works.
func mountFrontend(app *fiber.App, dir string, log *slog.Logger) {
	if _, err := os.Stat(dir); err != nil {
		log.Warn("static dir not available, frontend disabled", "dir", dir, "error", err)
		return
	}

	static := filesystem.New(filesystem.Config{
		Root:         http.Dir(dir),
		Index:        "index.html",
		MaxAge:       3600,
		NotFoundFile: "index.html",
	})
	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api") {
			return fiber.NewError(fiber.StatusNotFound, "not found")
		}
		return static(c)
	})
	log.Info("serving frontend", "dir", dir)
}
