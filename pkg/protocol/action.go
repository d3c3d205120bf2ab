// Package protocol defines the contracts between the action type registry,
// the execution service, and the capability handles the host supplies.
package protocol

import (
	"context"
	"log/slog"

	"github.com/stelgo/actionhub/pkg/schema"
)

// ExecutorFunc implements an action type's runtime behavior. It receives
// already validated config, params and secrets, suspends only on its own
// outbound calls, and surfaces any downstream failure unchanged.
type ExecutorFunc func(ctx context.Context, opts ExecutorOptions) (any, error)

// ActionType is an immutable descriptor for a named, independently
// validated, independently executed unit of behavior. Created once at
// startup via registration, never mutated afterwards.
type ActionType struct {
	// ID is the globally unique identifier within a registry.
	ID string

	// Name is a human-readable label with no uniqueness constraint.
	Name string

	ConfigSchema *schema.Schema
	ParamsSchema *schema.Schema

	// SecretsSchema is declared only by action types that carry credentials.
	SecretsSchema *schema.Schema

	Executor ExecutorFunc
}

// ExecutorOptions is built once per invocation and discarded once the
// executor returns. Config, Params and Secrets are the normalized records
// produced by schema validation.
type ExecutorOptions struct {
	// ActionID is the caller-supplied correlation id for this invocation.
	ActionID string

	Config  map[string]any
	Params  map[string]any
	Secrets map[string]any

	Services Services
}

// Services is the bundle of capabilities an executor is permitted to use.
type Services struct {
	Logger       *slog.Logger
	Cluster      ClusterClient
	SavedObjects SavedObjectsClient
}
