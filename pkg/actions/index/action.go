// Package index provides the built-in action type that writes documents to
// a search cluster index through a single bulk call.
package index

import (
	"context"
	"maps"
	"time"

	"github.com/stelgo/actionhub/pkg/protocol"
	"github.com/stelgo/actionhub/pkg/schema"
)

const ActionTypeID = "index"

func NewActionType() *protocol.ActionType {
	return &protocol.ActionType{
		ID:           ActionTypeID,
		Name:         "Index",
		ConfigSchema: configSchema(),
		ParamsSchema: paramsSchema(),
		Executor:     execute,
	}
}

func configSchema() *schema.Schema {
	return &schema.Schema{
		Properties: map[string]*schema.Property{
			"index": {Types: []schema.Type{schema.TypeString, schema.TypeNull}},
		},
	}
}

func paramsSchema() *schema.Schema {
	return &schema.Schema{
		Properties: map[string]*schema.Property{
			"index":              {Types: []schema.Type{schema.TypeString}},
			"executionTimeField": {Types: []schema.Type{schema.TypeString}},
			"refresh":            {Types: []schema.Type{schema.TypeBoolean}},
			"documents": {
				Types:    []schema.Type{schema.TypeArray},
				Required: true,
				Items:    &schema.Property{Types: []schema.Type{schema.TypeObject}},
			},
		},
	}
}

// execute issues exactly one bulk call. params.index wins over config.index;
// when neither is set the call is made without an index name and the cluster
// rejects it, keeping index resolution failures in one place downstream.
func execute(ctx context.Context, opts protocol.ExecutorOptions) (any, error) {
	effectiveIndex, _ := opts.Params["index"].(string)
	if effectiveIndex == "" {
		effectiveIndex, _ = opts.Config["index"].(string)
	}

	documents, _ := opts.Params["documents"].([]any)
	timeField, _ := opts.Params["executionTimeField"].(string)

	// One timestamp per invocation, shared by every document.
	executionTime := time.Now().UTC()

	body := make([]any, 0, len(documents)*2)

	for _, doc := range documents {
		body = append(body, map[string]any{"index": map[string]any{}})

		if timeField != "" {
			record, _ := doc.(map[string]any)
			stamped := make(map[string]any, len(record)+1)
			maps.Copy(stamped, record)
			stamped[timeField] = executionTime
			doc = stamped
		}

		body = append(body, doc)
	}

	bulkParams := map[string]any{
		"body": body,
	}

	if effectiveIndex != "" {
		bulkParams["index"] = effectiveIndex
	}

	if refresh, ok := opts.Params["refresh"]; ok {
		bulkParams["refresh"] = refresh
	}

	return opts.Services.Cluster.Call(ctx, "bulk", bulkParams)
}
