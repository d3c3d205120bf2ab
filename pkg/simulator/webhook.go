package simulator

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/xeipuuv/gojsonschema"
)

// webhookPayloadSchema is the shape the webhook simulator accepts.
var webhookPayloadSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"event": map[string]any{
			"type": "string",
		},
		"payload": map[string]any{
			"type": "object",
		},
	},
	"required":             []any{"event"},
	"additionalProperties": false,
}

// Webhook emulates a generic authenticated webhook receiver: it requires an
// Authorization header and a payload matching webhookPayloadSchema.
func (h *Handlers) Webhook(c fiber.Ctx) error {
	if c.Get("Authorization") == "" {
		return unauthorized(c, "missing authorization header")
	}

	var payload map[string]any

	if err := c.Bind().JSON(&payload); err != nil {
		return badRequest(c, "invalid JSON payload: "+err.Error())
	}

	schemaLoader := gojsonschema.NewGoLoader(webhookPayloadSchema)
	payloadLoader := gojsonschema.NewGoLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, payloadLoader)
	if err != nil {
		return badRequest(c, "payload validation failed: "+err.Error())
	}

	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, validationError := range result.Errors() {
			reasons = append(reasons, validationError.String())
		}

		return badRequest(c, "payload validation failed: "+strings.Join(reasons, "; "))
	}

	h.logger.Debug("Webhook simulator accepted payload", "event", payload["event"])

	return c.JSON(fiber.Map{"status": "ok"})
}
