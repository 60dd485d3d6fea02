package queries

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/metrics"
	"storefront/internal/pkg/errs"
)

// validOrderReader loads every indexed order, drops the ones that may not be
// displayed and refreshes the cached shipping status of the rest.
type validOrderReader struct {
	orders    ports.OrderRepository
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

// read returns the displayable orders, newest first. Missing and corrupt
// records are skipped; only failures of the store itself are returned.
//
// Invalid records are filtered before the refresh, so they are never rewritten.
func (r validOrderReader) read(ctx context.Context, now time.Time) ([]*order.Order, error) {
	index, err := r.orders.ListIndexed(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*order.Order, 0, len(index))
	for _, sessionID := range index {
		o, getErr := r.orders.Get(ctx, sessionID)
		switch {
		case errors.Is(getErr, errs.ErrObjectNotFound):
			r.logger.DebugContext(ctx, "indexed order has no record", "session_id", sessionID.String())
			continue
		case errors.Is(getErr, errs.ErrRecordIsCorrupt):
			metrics.CorruptRecords.Inc()
			r.logger.WarnContext(ctx, "skipping corrupt order record",
				"session_id", sessionID.String(), "error", getErr)
			continue
		case getErr != nil:
			return nil, getErr
		}

		if invalid := o.ValidateForDisplay(); invalid != nil {
			r.logger.DebugContext(ctx, "skipping order that cannot be displayed",
				"session_id", sessionID.String(), "reason", invalid)
			continue
		}

		r.refresh(ctx, o, now)
		result = append(result, o)
	}

	slices.SortStableFunc(result, func(a, b *order.Order) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.SessionID().String(), b.SessionID().String())
	})
	return result, nil
}

// refresh recomputes the cached status and writes the record back when it
// changed. A failed write is logged; the refreshed value is still returned.
func (r validOrderReader) refresh(ctx context.Context, o *order.Order, now time.Time) {
	previous := o.ShippingStatus()
	if !o.RefreshStatus(now) {
		return
	}

	if err := r.orders.Put(ctx, o); err != nil {
		r.logger.ErrorContext(ctx, "failed to rewrite refreshed order",
			"order_id", o.OrderID(), "error", err)
		return
	}
	metrics.StatusRefreshes.Inc()

	if previous == o.ShippingStatus() {
		return
	}
	event := order.NewChangedEvent(o, previous, order.ReasonStatusRefreshed, now)
	if err := r.publisher.Publish(ctx, event); err != nil {
		metrics.EventPublishFailures.Inc()
		r.logger.WarnContext(ctx, "failed to publish status change",
			"order_id", o.OrderID(), "error", err)
	}
}
