package queries

import (
	"context"
	"log/slog"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// FindOrderByOrderIDQueryHandler scans the valid orders for a matching order ID.
//
// Order IDs are derived from the last six characters of the session ID and may
// collide; the most recently created match wins.
type FindOrderByOrderIDQueryHandler struct {
	reader validOrderReader
}

func NewFindOrderByOrderIDQueryHandler(
	orders ports.OrderRepository,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) FindOrderByOrderIDQueryHandler {
	return FindOrderByOrderIDQueryHandler{
		reader: validOrderReader{
			orders:    orders,
			publisher: publisher,
			logger:    logger.With("component", "order-query"),
		},
	}
}

// Handle returns errs.ObjectNotFoundError when no displayable order matches.
func (h FindOrderByOrderIDQueryHandler) Handle(ctx context.Context, query FindOrderByOrderIDQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	orders, err := h.reader.read(ctx, query.Now())
	if err != nil {
		return OrderResponse{}, err
	}

	for _, o := range orders {
		if o.OrderID() == query.OrderID() {
			return NewOrderResponse(o), nil
		}
	}
	return OrderResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
}
