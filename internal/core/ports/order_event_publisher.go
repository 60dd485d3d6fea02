package ports

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// OrderEventPublisher delivers order-changed notifications to subscribers.
// Publishing is best effort: callers log failures and carry on.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event order.ChangedEvent) error
}
