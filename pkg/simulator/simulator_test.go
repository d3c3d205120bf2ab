package simulator

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stelgo/actionhub/pkg/log"
)

func setupTestApp() *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, log.Discard())

	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestSlackSimulator_OK(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/_simulators/slack", `{"text": "hello"}`, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestSlackSimulator_NoText(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/_simulators/slack", `{}`, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "no text provided")
}

func TestSlackSimulator_RateLimit(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/_simulators/slack", `{"text": "rate_limit"}`, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
}

func TestSlackSimulator_ServerFailure(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/_simulators/slack", `{"text": "status_500"}`, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestSlackSimulator_InvalidJSON(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/_simulators/slack", `{not json`, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebhookSimulator_RequiresAuthorization(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/_simulators/webhook", `{"event": "deploy"}`, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookSimulator_AcceptsValidPayload(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/_simulators/webhook",
		`{"event": "deploy", "payload": {"service": "api"}}`,
		map[string]string{"Authorization": "Bearer token"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status": "ok"}`, string(body))
}

func TestWebhookSimulator_RejectsInvalidPayload(t *testing.T) {
	app := setupTestApp()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing event", body: `{"payload": {}}`},
		{name: "event wrong type", body: `{"event": 42}`},
		{name: "unknown field", body: `{"event": "deploy", "extra": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/_simulators/webhook", tt.body,
				map[string]string{"Authorization": "Bearer token"})
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), "payload validation failed")
		})
	}
}
