package http

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// checkoutPath is where the storefront sends a shopper whose order cannot be
// assembled from what was staged.
const checkoutPath = "/checkout"

// writeError maps application errors to status codes:
//   - incomplete or unreadable checkout data: 422 with a redirect to the checkout
//   - other assembly rejections: 422
//   - unknown order: 404
//   - invalid input: 400
//   - anything else: 500, logged
func writeError(ctx echo.Context, logger *slog.Logger, err error) error {
	switch {
	case errors.Is(err, services.ErrIncompleteOrder), errors.Is(err, errs.ErrRecordIsCorrupt):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:     http.StatusUnprocessableEntity,
			Message:  err.Error(),
			Redirect: checkoutPath,
		})
	case errors.Is(err, services.ErrTotalMismatch),
		errors.Is(err, services.ErrTotalOutOfRange),
		errors.Is(err, services.ErrUnsupportedCountry):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return badRequest(ctx, err.Error())
	default:
		logger.ErrorContext(ctx.Request().Context(), "request failed",
			"path", ctx.Path(), "error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorHandler renders errors returned from handlers and middleware, echo's
// own routing errors included, in the ErrorResponse shape.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) {
			_ = writeError(ctx, logger, err)
			return
		}

		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		if ctx.Request().Method == http.MethodHead {
			_ = ctx.NoContent(httpErr.Code)
			return
		}
		_ = ctx.JSON(httpErr.Code, ErrorResponse{Code: httpErr.Code, Message: message})
	}
}
