package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetrics(t *testing.T) {
	e := echo.New()
	e.Use(PrometheusMetrics("/health"))
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/items/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/broken", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot) })

	counter := func(path, status string) float64 {
		return testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, path, status))
	}

	items := counter("/items/:id", "200")
	broken := counter("/broken", "418")
	health := counter("/health", "200")

	for _, target := range []string{"/items/1", "/items/2", "/broken", "/health"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	assert.Equal(t, items+2, counter("/items/:id", "200"))
	assert.Equal(t, broken+1, counter("/broken", "418"))
	assert.Equal(t, health, counter("/health", "200"))
}
