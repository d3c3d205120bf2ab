package simulator

import (
	"github.com/gofiber/fiber/v3"
)

type slackMessage struct {
	Text string `json:"text"`
}

// Slack emulates a Slack incoming webhook. The message text selects the
// canned response, so tests can drive every failure mode from the caller
// side.
func (h *Handlers) Slack(c fiber.Ctx) error {
	var msg slackMessage

	if err := c.Bind().JSON(&msg); err != nil {
		return badRequest(c, "invalid JSON payload: "+err.Error())
	}

	if msg.Text == "" {
		return badRequest(c, "no text provided")
	}

	h.logger.Debug("Slack simulator received message", "text", msg.Text)

	switch msg.Text {
	case "rate_limit":
		c.Set("Retry-After", "1")

		return c.Status(fiber.StatusTooManyRequests).SendString("rate limited")
	case "status_500":
		return c.Status(fiber.StatusInternalServerError).SendString("simulated server failure")
	default:
		return c.SendString("ok")
	}
}
