// Package slack provides the built-in action type that posts a message to a
// Slack incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stelgo/actionhub/pkg/protocol"
	"github.com/stelgo/actionhub/pkg/schema"
)

const ActionTypeID = "slack"

const requestTimeout = 30 * time.Second

func NewActionType() *protocol.ActionType {
	return &protocol.ActionType{
		ID:            ActionTypeID,
		Name:          "Slack",
		ConfigSchema:  &schema.Schema{},
		ParamsSchema:  paramsSchema(),
		SecretsSchema: secretsSchema(),
		Executor:      execute,
	}
}

func paramsSchema() *schema.Schema {
	return &schema.Schema{
		Properties: map[string]*schema.Property{
			"message": {Types: []schema.Type{schema.TypeString}, Required: true},
		},
	}
}

func secretsSchema() *schema.Schema {
	return &schema.Schema{
		Properties: map[string]*schema.Property{
			"webhookUrl": {Types: []schema.Type{schema.TypeString}, Required: true},
		},
	}
}

func execute(ctx context.Context, opts protocol.ExecutorOptions) (any, error) {
	webhookURL, _ := opts.Secrets["webhookUrl"].(string)
	message, _ := opts.Params["message"].(string)

	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return nil, fmt.Errorf("failed to encode slack payload: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create slack request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("slack request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read slack response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("slack webhook returned status %d: %s", resp.StatusCode, string(responseBody))
	}

	return map[string]any{
		"status_code": resp.StatusCode,
		"body":        string(responseBody),
	}, nil
}
