package middleware

import (
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idempotencyApp(t *testing.T) (*fiber.App, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	app := fiber.New()
	app.Use(IdempotencyMiddleware(client, time.Minute))

	serial := 0
	app.Post("/sales", func(c *fiber.Ctx) error {
		serial++
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": fmt.Sprintf("sale-%d", serial)})
	})
	return app, client
}

func post(t *testing.T, app *fiber.App, correlationID string) (*http.Response, string) {
	req, _ := http.NewRequest("POST", "/sales", nil)
	if correlationID != "" {
		req.Header.Set("X-Correlation-ID", correlationID)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIdempotencyReplaysFirstResponse(t *testing.T) {
	app, client := idempotencyApp(t)

	resp, first := post(t, app, "till-1")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Contains(t, first, "sale-1")

	// the cache write is fire and forget
	require.Eventually(t, func() bool {
		return client.Exists(t.Context(), "idempotency:till-1").Val() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// churn other requests through the app so recycled response buffers
	// hold different bytes than the first sale
	for i := 0; i < 10; i++ {
		post(t, app, "")
	}

	resp, replayed := post(t, app, "till-1")
	assert.Equal(t, "true", resp.Header.Get("X-Idempotent-Replay"))
	assert.Equal(t, first, replayed, "replay must return the original response bytes")
}

func TestIdempotencySkipsWithoutCorrelationID(t *testing.T) {
	app, _ := idempotencyApp(t)

	_, first := post(t, app, "")
	_, second := post(t, app, "")
	assert.NotEqual(t, first, second)
}

func TestIdempotencyIgnoresReads(t *testing.T) {
	app, client := idempotencyApp(t)
	app.Get("/sales", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"items": []string{}})
	})

	req, _ := http.NewRequest("GET", "/sales", nil)
	req.Header.Set("X-Correlation-ID", "till-2")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, client.Exists(t.Context(), "idempotency:till-2").Val())
}
