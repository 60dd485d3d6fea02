package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const apiPrefix = "/api/v1"

// Register installs the validator, the error handler, middleware and all
// routes of the service on e.
func Register(e *echo.Echo, s *Server) {
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = errorHandler(s.logger)

	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware("http.server",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)))
	e.Use(metricsMiddleware)

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "OK")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group(apiPrefix)

	checkout := api.Group("/checkout")
	checkout.POST("", s.StartCheckout)
	checkout.PUT("/:sessionId/cart", s.StageCart)
	checkout.PUT("/:sessionId/address", s.StageAddress)
	checkout.POST("/:sessionId/confirm", s.ConfirmOrder)

	orders := api.Group("/orders")
	orders.GET("", s.ListOrders)
	orders.GET("/:orderId", s.GetOrder)
}
