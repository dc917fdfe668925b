package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberworks/studio-portal/internal/config"
	"github.com/emberworks/studio-portal/internal/observability"
	apperrors "github.com/emberworks/studio-portal/pkg/util"
)

func newMiddlewareApp(t *testing.T, rateCfg config.RateLimitConfig) *fiber.App {
	t.Helper()

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second, rateCfg)
	return app
}

func decodeErrorEnvelope(t *testing.T, resp *nethttp.Response) map[string]any {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NotNil(t, payload.Error)
	return payload.Error
}

func TestDomainErrorsRenderTheSharedEnvelope(t *testing.T) {
	app := newMiddlewareApp(t, config.RateLimitConfig{})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("widget", map[string]any{"id": "w1"})
	})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	envelope := decodeErrorEnvelope(t, resp)
	assert.Equal(t, "NOT_FOUND", envelope["code"])
	assert.Equal(t, "widget not found", envelope["message"])
}

func TestPanicsBecomeInternalErrors(t *testing.T) {
	app := newMiddlewareApp(t, config.RateLimitConfig{})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("unexpected")
	})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)

	envelope := decodeErrorEnvelope(t, resp)
	assert.Equal(t, "INTERNAL_ERROR", envelope["code"])
}

func TestFiberErrorsAreFoldedIntoTheEnvelope(t *testing.T) {
	app := newMiddlewareApp(t, config.RateLimitConfig{})
	app.Get("/bad", func(c *fiber.Ctx) error {
		return fiber.NewError(nethttp.StatusBadRequest, "invalid payload")
	})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/bad", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	envelope := decodeErrorEnvelope(t, resp)
	assert.Equal(t, "VALIDATION_FAILED", envelope["code"])
}

func TestAPIRateLimitKicksInAfterBurst(t *testing.T) {
	app := newMiddlewareApp(t, config.RateLimitConfig{Burst: 2, PerSecond: 1})
	app.Get("/api/things", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	var last int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(nethttp.MethodGet, "/api/things", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.9")
		resp, err := app.Test(req)
		require.NoError(t, err)
		last = resp.StatusCode
	}
	assert.Equal(t, nethttp.StatusTooManyRequests, last)
}

func TestRateLimitDoesNotApplyOutsideAPI(t *testing.T) {
	app := newMiddlewareApp(t, config.RateLimitConfig{Burst: 1, PerSecond: 1})
	app.Get("/about", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/about", nil))
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	app := newMiddlewareApp(t, config.RateLimitConfig{})
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	req := httptest.NewRequest(nethttp.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-42", resp.Header.Get("X-Request-ID"))
}
