package queries

import (
	"context"
	"log/slog"

	"storefront/internal/core/ports"
)

// ListValidOrdersQueryHandler serves the order tracking list. It also drives
// the scheduled refresh, which discards the result.
type ListValidOrdersQueryHandler struct {
	reader validOrderReader
}

func NewListValidOrdersQueryHandler(
	orders ports.OrderRepository,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ListValidOrdersQueryHandler {
	return ListValidOrdersQueryHandler{
		reader: validOrderReader{
			orders:    orders,
			publisher: publisher,
			logger:    logger.With("component", "order-query"),
		},
	}
}

// Handle returns the displayable orders sorted by createdAt, newest first.
func (h ListValidOrdersQueryHandler) Handle(ctx context.Context, query ListValidOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.read(ctx, query.Now())
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, NewOrderResponse(o))
	}
	return responses, nil
}
