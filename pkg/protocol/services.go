package protocol

import "context"

// ClusterClient is the single-method RPC façade over the search cluster.
// The execution core only ever invokes it with command "bulk"; timeout and
// retry policy, if any, belong to the implementation behind it.
type ClusterClient interface {
	Call(ctx context.Context, command string, params map[string]any) (map[string]any, error)
}

// SavedObjectsClient is the object-store capability in the services bundle.
type SavedObjectsClient interface {
	Get(ctx context.Context, objectType, id string) (map[string]any, error)
	Create(ctx context.Context, objectType, id string, attributes map[string]any) error
	Delete(ctx context.Context, objectType, id string) error
}

// SecretsClient retrieves decrypted credentials for an action instance.
type SecretsClient interface {
	Decrypt(ctx context.Context, actionID string) (map[string]any, error)
}

// ExecuteRequest is the transport form of one action invocation, as carried
// through the task manager queue.
type ExecuteRequest struct {
	ActionTypeID string         `json:"action_type_id"`
	ActionID     string         `json:"action_id"`
	Config       map[string]any `json:"config,omitempty"`
	Params       map[string]any `json:"params,omitempty"`
}

// TaskManager schedules action executions to run outside the caller's
// request. Implementations run each request through the execution service.
type TaskManager interface {
	// Enqueue hands the request to the queue worker, fire and forget.
	Enqueue(ctx context.Context, req ExecuteRequest) error

	// Schedule runs the request on a recurring cron expression.
	Schedule(cronExpr string, req ExecuteRequest) error
}
