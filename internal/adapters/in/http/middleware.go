package http

import (
	"strconv"

	"storefront/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// metricsMiddleware records request count and latency per route template.
func metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		route := ctx.Path()
		if route == "" {
			route = "unmatched"
		}
		timer := prometheus.NewTimer(metrics.HTTPRequestDuration.WithLabelValues(route))
		defer timer.ObserveDuration()

		err := next(ctx)
		if err != nil {
			ctx.Error(err)
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(ctx.Response().Status)).Inc()
		return nil
	}
}
