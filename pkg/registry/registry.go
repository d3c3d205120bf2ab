// Package registry holds the process-wide mapping from action type id to
// action type definition. Populated once at startup, read-only afterwards.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stelgo/actionhub/pkg/protocol"
)

var (
	ErrAlreadyRegistered = errors.New("action type already registered")
	ErrNotRegistered     = errors.New("action type not registered")
)

// Deps are the capability handles a registry carries for the execution
// machinery. They are consumed, never introspected.
type Deps struct {
	// GetServices builds the services bundle for one invocation.
	GetServices func(ctx context.Context) protocol.Services

	TaskManager protocol.TaskManager
	Secrets     protocol.SecretsClient
}

type ActionTypeRegistry struct {
	logger      *slog.Logger
	deps        Deps
	actionTypes map[string]*protocol.ActionType
}

func NewActionTypeRegistry(logger *slog.Logger, deps Deps) *ActionTypeRegistry {
	return &ActionTypeRegistry{
		logger:      logger,
		deps:        deps,
		actionTypes: make(map[string]*protocol.ActionType),
	}
}

// Register inserts an action type. Registering an id twice fails; the first
// definition is never silently replaced. Not safe for concurrent use;
// registration happens once at startup.
func (r *ActionTypeRegistry) Register(actionType *protocol.ActionType) error {
	if actionType.ID == "" {
		return errors.New("action type id is required")
	}

	if actionType.Executor == nil {
		return fmt.Errorf("action type '%s' has no executor", actionType.ID)
	}

	if _, exists := r.actionTypes[actionType.ID]; exists {
		return fmt.Errorf("action type '%s': %w", actionType.ID, ErrAlreadyRegistered)
	}

	r.actionTypes[actionType.ID] = actionType
	r.logger.Debug("Registered action type", "action_type_id", actionType.ID)

	return nil
}

// Get returns the action type for id, or an error wrapping ErrNotRegistered.
func (r *ActionTypeRegistry) Get(id string) (*protocol.ActionType, error) {
	actionType, ok := r.actionTypes[id]
	if !ok {
		return nil, fmt.Errorf("action type '%s': %w", id, ErrNotRegistered)
	}

	return actionType, nil
}

// Has reports whether id is registered. It never fails.
func (r *ActionTypeRegistry) Has(id string) bool {
	_, ok := r.actionTypes[id]

	return ok
}

// List returns the registered action types in no particular order.
func (r *ActionTypeRegistry) List() []*protocol.ActionType {
	list := make([]*protocol.ActionType, 0, len(r.actionTypes))
	for _, actionType := range r.actionTypes {
		list = append(list, actionType)
	}

	return list
}

// Deps exposes the capability handles supplied at construction.
func (r *ActionTypeRegistry) Deps() Deps {
	return r.deps
}
