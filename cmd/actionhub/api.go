// Package main provides the ActionHub server: the action execution API plus
// the Slack/webhook simulator routes used by integration tests.
package main

import (
	"errors"
	"log/slog"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/moogar0880/problems"

	"github.com/stelgo/actionhub/pkg/executor"
	"github.com/stelgo/actionhub/pkg/protocol"
	"github.com/stelgo/actionhub/pkg/registry"
	"github.com/stelgo/actionhub/pkg/schema"
	"github.com/stelgo/actionhub/pkg/simulator"
)

type API struct {
	logger   *slog.Logger
	registry *registry.ActionTypeRegistry
	executor *executor.Service
	validate *validator.Validate
}

func NewAPI(log *slog.Logger, reg *registry.ActionTypeRegistry, exec *executor.Service) *API {
	return &API{
		logger:   log,
		registry: reg,
		executor: exec,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ExecuteActionRequest is the request body for running or enqueueing an
// action.
type ExecuteActionRequest struct {
	ActionTypeID string         `json:"action_type_id" validate:"required"`
	ActionID     string         `json:"action_id"`
	Config       map[string]any `json:"config"`
	Params       map[string]any `json:"params"`
}

func (a *API) App() *fiber.App {
	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("ActionHub API")
	})

	app.Get("/action_types", a.ListActionTypes)
	app.Post("/actions/execute", a.ExecuteAction)
	app.Post("/actions/enqueue", a.EnqueueAction)

	simulator.RegisterRoutes(app, a.logger)

	return app
}

func (a *API) ListActionTypes(c fiber.Ctx) error {
	actionTypes := a.registry.List()

	sort.Slice(actionTypes, func(i, j int) bool {
		return actionTypes[i].ID < actionTypes[j].ID
	})

	list := make([]fiber.Map, 0, len(actionTypes))
	for _, actionType := range actionTypes {
		list = append(list, fiber.Map{
			"id":   actionType.ID,
			"name": actionType.Name,
		})
	}

	return c.JSON(list)
}

func (a *API) ExecuteAction(c fiber.Ctx) error {
	req, err := a.parseExecuteRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := a.executor.Execute(c.Context(), protocol.ExecuteRequest{
		ActionTypeID: req.ActionTypeID,
		ActionID:     req.ActionID,
		Config:       req.Config,
		Params:       req.Params,
	})
	if err != nil {
		return handleExecutionError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"result": result,
	})
}

func (a *API) EnqueueAction(c fiber.Ctx) error {
	req, err := a.parseExecuteRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	if !a.registry.Has(req.ActionTypeID) {
		return notFound(c, "action type '"+req.ActionTypeID+"' not registered")
	}

	err = a.executor.Enqueue(c.Context(), protocol.ExecuteRequest{
		ActionTypeID: req.ActionTypeID,
		ActionID:     req.ActionID,
		Config:       req.Config,
		Params:       req.Params,
	})
	if err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "queued"})
}

func (a *API) parseExecuteRequest(c fiber.Ctx) (*ExecuteActionRequest, error) {
	var req ExecuteActionRequest

	if err := c.Bind().JSON(&req); err != nil {
		return nil, err
	}

	if err := a.validate.Struct(req); err != nil {
		return nil, err
	}

	return &req, nil
}

func (a *API) Start(port int) error {
	return a.App().Listen(":" + strconv.Itoa(port))
}

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(fiber.StatusBadRequest).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(fiber.StatusNotFound).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(fiber.StatusInternalServerError).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleExecutionError maps executor failures onto problem responses:
// unknown action types are 404, validation failures 400, everything the
// downstream RPC surfaced is 502.
func handleExecutionError(c fiber.Ctx, err error) error {
	var validationErr *schema.ValidationError

	switch {
	case errors.Is(err, registry.ErrNotRegistered):
		return notFound(c, err.Error())

	case errors.As(err, &validationErr):
		return badRequest(c, err.Error())

	default:
		problem := problems.NewStatusProblem(fiber.StatusBadGateway).
			WithInstance(c.Path()).
			WithType("execution_error").
			WithDetail(err.Error())

		return c.Status(fiber.StatusBadGateway).JSON(problem)
	}
}
