// Package executor runs action invocations: it resolves the action type,
// validates raw config and params, assembles the executor options and
// invokes the executor.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stelgo/actionhub/pkg/protocol"
	"github.com/stelgo/actionhub/pkg/registry"
	"github.com/stelgo/actionhub/pkg/schema"
)

var ErrNoTaskManager = errors.New("no task manager configured")

type Service struct {
	logger   *slog.Logger
	registry *registry.ActionTypeRegistry
}

func NewService(logger *slog.Logger, reg *registry.ActionTypeRegistry) *Service {
	return &Service{
		logger:   logger.With("module", "action_executor"),
		registry: reg,
	}
}

// Execute runs one action invocation synchronously. Validation failures are
// returned before any side effect; executor failures are propagated
// unchanged, never logged and swallowed here.
func (s *Service) Execute(ctx context.Context, req protocol.ExecuteRequest) (any, error) {
	actionType, err := s.registry.Get(req.ActionTypeID)
	if err != nil {
		return nil, err
	}

	config, err := schema.Validate(actionType.ConfigSchema, req.Config)
	if err != nil {
		return nil, fmt.Errorf("error validating action type config: %w", err)
	}

	params, err := schema.Validate(actionType.ParamsSchema, req.Params)
	if err != nil {
		return nil, fmt.Errorf("error validating action params: %w", err)
	}

	secrets, err := s.resolveSecrets(ctx, actionType, req.ActionID)
	if err != nil {
		return nil, err
	}

	actionID := req.ActionID
	if actionID == "" {
		actionID = uuid.New().String()
	}

	opts := protocol.ExecutorOptions{
		ActionID: actionID,
		Config:   config,
		Params:   params,
		Secrets:  secrets,
		Services: s.services(ctx),
	}

	s.logger.Debug("Executing action",
		"action_type_id", actionType.ID,
		"action_id", actionID)

	return actionType.Executor(ctx, opts)
}

// Enqueue hands the invocation to the task manager capability; the queue
// worker validates and runs it.
func (s *Service) Enqueue(ctx context.Context, req protocol.ExecuteRequest) error {
	taskManager := s.registry.Deps().TaskManager
	if taskManager == nil {
		return ErrNoTaskManager
	}

	return taskManager.Enqueue(ctx, req)
}

// resolveSecrets decrypts and validates credentials for action types that
// declare a secrets schema. Types without one never touch the secrets store.
func (s *Service) resolveSecrets(ctx context.Context, actionType *protocol.ActionType, actionID string) (map[string]any, error) {
	if actionType.SecretsSchema == nil {
		return nil, nil
	}

	raw := map[string]any{}

	if secretsClient := s.registry.Deps().Secrets; secretsClient != nil {
		decrypted, err := secretsClient.Decrypt(ctx, actionID)
		if err != nil {
			return nil, fmt.Errorf("error retrieving action secrets: %w", err)
		}

		raw = decrypted
	}

	secrets, err := schema.Validate(actionType.SecretsSchema, raw)
	if err != nil {
		return nil, fmt.Errorf("error validating action secrets: %w", err)
	}

	return secrets, nil
}

func (s *Service) services(ctx context.Context) protocol.Services {
	var services protocol.Services

	if getServices := s.registry.Deps().GetServices; getServices != nil {
		services = getServices(ctx)
	}

	if services.Logger == nil {
		services.Logger = s.logger
	}

	return services
}
