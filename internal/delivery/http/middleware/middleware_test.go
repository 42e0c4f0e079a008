package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/station-locator/internal/delivery/http/middleware"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	app := fiber.New()
	app.Use(middleware.Logger(zap.New(core)))
	app.Get("/stations", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	t.Run("generates request id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/stations", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "/stations", fields["path"])
		assert.EqualValues(t, fiber.StatusOK, fields["status"])
	})

	t.Run("keeps incoming request id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/stations", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-42")

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, "req-42", resp.Header.Get(middleware.RequestIDHeader))
		assert.Equal(t, "req-42", logs.TakeAll()[0].ContextMap()["request_id"])
	})

	t.Run("logs final status of failed requests", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
	})
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	app := fiber.New()
	app.Use(middleware.Recovery(zap.New(core)))
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.CORS(""))
	app.Get("/stations", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/stations", nil)
	req.Header.Set("Origin", "http://example.org")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
