package http

import (
	"log/slog"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server exposes the checkout flow and order tracking over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	startCheckoutHandler commands.StartCheckoutCommandHandler
	stageCartHandler     commands.StageCartCommandHandler
	stageAddressHandler  commands.StageAddressCommandHandler
	confirmOrderHandler  commands.ConfirmOrderCommandHandler

	// Query handlers
	listValidOrdersHandler    queries.ListValidOrdersQueryHandler
	findOrderByOrderIDHandler queries.FindOrderByOrderIDQueryHandler

	clock  kernel.Clock
	logger *slog.Logger
}

func NewServer(
	startCheckoutHandler commands.StartCheckoutCommandHandler,
	stageCartHandler commands.StageCartCommandHandler,
	stageAddressHandler commands.StageAddressCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	listValidOrdersHandler queries.ListValidOrdersQueryHandler,
	findOrderByOrderIDHandler queries.FindOrderByOrderIDQueryHandler,
	clock kernel.Clock,
	logger *slog.Logger,
) *Server {
	return &Server{
		startCheckoutHandler:      startCheckoutHandler,
		stageCartHandler:          stageCartHandler,
		stageAddressHandler:       stageAddressHandler,
		confirmOrderHandler:       confirmOrderHandler,
		listValidOrdersHandler:    listValidOrdersHandler,
		findOrderByOrderIDHandler: findOrderByOrderIDHandler,
		clock:                     clock,
		logger:                    logger.With("component", "http"),
	}
}

// StartCheckout handles POST /api/v1/checkout - mints a session and stages the cart.
func (s *Server) StartCheckout(ctx echo.Context) error {
	var req CartRequest
	if err := s.bindAndValidate(ctx, &req); err != nil {
		return err
	}

	items, err := itemsToDomain(req.Items)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewStartCheckoutCommand(items, req.Total)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	sessionID, err := s.startCheckoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{
		SessionID: sessionID.String(),
		OrderID:   order.DeriveOrderID(sessionID),
	})
}

// StageCart handles PUT /api/v1/checkout/:sessionId/cart.
func (s *Server) StageCart(ctx echo.Context) error {
	sessionID, err := kernel.SessionIDFromString(ctx.Param("sessionId"))
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var req CartRequest
	if err = s.bindAndValidate(ctx, &req); err != nil {
		return err
	}

	items, err := itemsToDomain(req.Items)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewStageCartCommand(sessionID, items, req.Total)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	if err = s.stageCartHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StageAddress handles PUT /api/v1/checkout/:sessionId/address.
func (s *Server) StageAddress(ctx echo.Context) error {
	sessionID, err := kernel.SessionIDFromString(ctx.Param("sessionId"))
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var req AddressRequest
	if err = s.bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewStageAddressCommand(sessionID, req.toDomain())
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	if err = s.stageAddressHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmOrder handles POST /api/v1/checkout/:sessionId/confirm - called from
// the payment success page. The body is optional.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	sessionID, err := kernel.SessionIDFromString(ctx.Param("sessionId"))
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var req ConfirmRequest
	if err = s.bindAndValidate(ctx, &req); err != nil {
		return err
	}

	payment, err := req.toDraft()
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewConfirmOrderCommand(sessionID, payment)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	confirmed, err := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(queries.NewOrderResponse(confirmed)))
}

// ListOrders handles GET /api/v1/orders - the tracking page.
func (s *Server) ListOrders(ctx echo.Context) error {
	query, err := queries.NewListValidOrdersQuery(s.clock.Now())
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	orders, err := s.listValidOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	query, err := queries.NewFindOrderByOrderIDQuery(ctx.Param("orderId"), s.clock.Now())
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	found, err := s.findOrderByOrderIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(found))
}

// bindAndValidate returns an *echo.HTTPError with status 400 when the body
// cannot be decoded or fails its struct tags.
func (s *Server) bindAndValidate(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request: "+err.Error()).SetInternal(err)
	}
	return nil
}
