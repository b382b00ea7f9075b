package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Contadores(t *testing.T) {
	r := New(false)

	r.BatchExecuted(12)
	r.BatchExecuted(3)
	r.BatchRejected()
	r.SaleRegistered(45.5)
	r.SaleRejected()
	r.ProductsRepriced("recipe", 2)
	r.ProductsRepriced("recipe", 0)
	r.ProductsRepriced("tax", 5)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.batches))
	assert.Equal(t, 15.0, testutil.ToFloat64(r.batchUnits))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.batchesRejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sales))
	assert.Equal(t, 45.5, testutil.ToFloat64(r.salesAmount))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.salesRejected))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.repriced.WithLabelValues("recipe")))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.repriced.WithLabelValues("tax")))
}

func TestMiddleware_YHandler(t *testing.T) {
	r := New(false)
	app := fiber.New()
	app.Use(r.Middleware())
	app.Get("/api/products/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/metrics", r.Handler())

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/products/"+id, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "/api/products/:id", "200")))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "mipymes_http_requests_total")
}
