package commands

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/metrics"
	"storefront/internal/pkg/errs"
)

// ConfirmOrderCommandHandler assembles the staged draft into a finalized order
// and stores it.
//
// Confirming the same session again (a shopper reloading the success page)
// rewrites the record but keeps the createdAt of the first confirmation.
type ConfirmOrderCommandHandler struct {
	drafts    ports.DraftRepository
	orders    ports.OrderRepository
	assembler services.OrderAssembler
	publisher ports.OrderEventPublisher
	clock     kernel.Clock
	logger    *slog.Logger
}

func NewConfirmOrderCommandHandler(
	drafts ports.DraftRepository,
	orders ports.OrderRepository,
	assembler services.OrderAssembler,
	publisher ports.OrderEventPublisher,
	clock kernel.Clock,
	logger *slog.Logger,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		drafts:    drafts,
		orders:    orders,
		assembler: assembler,
		publisher: publisher,
		clock:     clock,
		logger:    logger.With("component", "confirm-order"),
	}
}

// Handle returns the stored order. Assembly failures are returned unchanged so
// callers can match services.ErrIncompleteOrder and the other sentinels.
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	sessionID := cmd.SessionID()
	staged, err := h.drafts.LoadDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	previous, err := h.previous(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	aggregate, err := h.assembler.Assemble(sessionID, staged.Merge(cmd.Payment()), previous, now)
	if err != nil {
		metrics.AssemblyFailures.WithLabelValues(failureReason(err)).Inc()
		h.logger.InfoContext(ctx, "order assembly rejected",
			"session_id", sessionID.String(), "error", err)
		return nil, err
	}

	if err = h.orders.Put(ctx, aggregate); err != nil {
		return nil, err
	}
	metrics.OrdersConfirmed.Inc()

	previousStatus := order.Unknown
	if previous != nil {
		previousStatus = previous.ShippingStatus()
	}
	event := order.NewChangedEvent(aggregate, previousStatus, order.ReasonConfirmed, now)
	if err = h.publisher.Publish(ctx, event); err != nil {
		metrics.EventPublishFailures.Inc()
		h.logger.WarnContext(ctx, "failed to publish order confirmation",
			"order_id", aggregate.OrderID(), "error", err)
	}

	h.logger.InfoContext(ctx, "order confirmed",
		"session_id", sessionID.String(), "order_id", aggregate.OrderID(), "total", aggregate.Total())
	return aggregate, nil
}

// previous returns the order already stored for sessionID, or nil when there
// is none. An unreadable record is replaced rather than blocking confirmation.
func (h ConfirmOrderCommandHandler) previous(ctx context.Context, sessionID kernel.SessionID) (*order.Order, error) {
	previous, err := h.orders.Get(ctx, sessionID)
	switch {
	case err == nil:
		return previous, nil
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil, nil
	case errors.Is(err, errs.ErrRecordIsCorrupt):
		metrics.CorruptRecords.Inc()
		h.logger.WarnContext(ctx, "replacing unreadable order record",
			"session_id", sessionID.String(), "error", err)
		return nil, nil
	default:
		return nil, err
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, services.ErrIncompleteOrder):
		return "incomplete"
	case errors.Is(err, services.ErrTotalMismatch):
		return "total_mismatch"
	case errors.Is(err, services.ErrTotalOutOfRange):
		return "total_out_of_range"
	case errors.Is(err, services.ErrUnsupportedCountry):
		return "unsupported_country"
	default:
		return "other"
	}
}
