// Package simulator provides the Slack and webhook HTTP test doubles that
// the server bootstrap wires into the host application. They exist so action
// types with outbound HTTP behavior can be exercised end to end without real
// third-party endpoints.
package simulator

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

type Handlers struct {
	logger *slog.Logger
}

func NewHandlers(logger *slog.Logger) *Handlers {
	return &Handlers{logger: logger.With("module", "simulator")}
}

// RegisterRoutes mounts the simulator endpoints on the host application.
func RegisterRoutes(app *fiber.App, logger *slog.Logger) {
	handlers := NewHandlers(logger)

	simulators := app.Group("/_simulators")
	simulators.Post("/slack", handlers.Slack)
	simulators.Post("/webhook", handlers.Webhook)
}

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(fiber.StatusBadRequest).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func unauthorized(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(fiber.StatusUnauthorized).
		WithInstance(c.Path()).
		WithType("unauthorized").
		WithDetail(detail)

	return c.Status(fiber.StatusUnauthorized).JSON(problem)
}
