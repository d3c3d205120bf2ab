// Package serverlog provides the built-in action type that writes a message
// to the server's own log.
package serverlog

import (
	"context"

	"github.com/stelgo/actionhub/pkg/protocol"
	"github.com/stelgo/actionhub/pkg/schema"
)

const ActionTypeID = "server-log"

func NewActionType() *protocol.ActionType {
	return &protocol.ActionType{
		ID:           ActionTypeID,
		Name:         "Server log",
		ConfigSchema: &schema.Schema{},
		ParamsSchema: paramsSchema(),
		Executor:     execute,
	}
}

func paramsSchema() *schema.Schema {
	return &schema.Schema{
		Properties: map[string]*schema.Property{
			"message": {Types: []schema.Type{schema.TypeString}, Required: true},
			"level":   {Types: []schema.Type{schema.TypeString}, Default: "info"},
		},
	}
}

func execute(ctx context.Context, opts protocol.ExecutorOptions) (any, error) {
	message, _ := opts.Params["message"].(string)
	level, _ := opts.Params["level"].(string)

	logger := opts.Services.Logger.With("action_type", ActionTypeID, "action_id", opts.ActionID)

	switch level {
	case "debug":
		logger.DebugContext(ctx, message)
	case "warn", "warning":
		logger.WarnContext(ctx, message)
	case "error":
		logger.ErrorContext(ctx, message)
	default:
		logger.InfoContext(ctx, message)
	}

	return map[string]any{"message": message, "level": level}, nil
}
