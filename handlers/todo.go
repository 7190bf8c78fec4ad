package handlers

import (
	"time"

	"snake-arena/services"

	"github.com/gofiber/fiber/v2"
)

type todoRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	DueDate     *time.Time `json:"due_date"`
}

func (r todoRequest) input() services.TodoInput {
	return services.TodoInput{Title: r.Title, Description: r.Description, DueDate: r.DueDate}
}

func SetupTodoRoutes(app *fiber.App, todos *services.TodoService) {
	grp := app.Group("/api/todos")

	grp.Get("/", func(c *fiber.Ctx) error {
		items, err := todos.List(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(items)
	})

	grp.Post("/", func(c *fiber.Ctx) error {
		var req todoRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		todo, err := todos.Create(c.UserContext(), req.input())
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(todo)
	})

	grp.Get("/:id", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		todo, err := todos.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(todo)
	})

	grp.Put("/:id", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req todoRequest
		if err := bindJSON(c, &req); err != nil {
			return respondError(c, err)
		}
		todo, err := todos.Update(c.UserContext(), id, req.input())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(todo)
	})

	grp.Delete("/:id", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := todos.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	grp.Post("/:id/toggle", func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		todo, err := todos.ToggleResolved(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(todo)
	})
}
