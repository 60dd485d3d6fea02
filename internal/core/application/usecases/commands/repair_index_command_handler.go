package commands

import (
	"context"
	"log/slog"

	"storefront/internal/core/ports"
)

// RepairIndexCommandHandler rebuilds the order index.
type RepairIndexCommandHandler struct {
	orders ports.OrderRepository
	logger *slog.Logger
}

func NewRepairIndexCommandHandler(orders ports.OrderRepository, logger *slog.Logger) RepairIndexCommandHandler {
	return RepairIndexCommandHandler{
		orders: orders,
		logger: logger.With("component", "repair-index"),
	}
}

// Handle returns the number of indexed sessions after the repair.
func (h RepairIndexCommandHandler) Handle(ctx context.Context, cmd RepairIndexCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	index, err := h.orders.RebuildIndex(ctx)
	if err != nil {
		return 0, err
	}

	h.logger.InfoContext(ctx, "order index repaired", "indexed", len(index))
	return len(index), nil
}
