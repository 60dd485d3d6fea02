package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// DraftRepository stages the partial writes of a checkout attempt. Every save
// overwrites only its own field.
type DraftRepository interface {
	SaveItems(ctx context.Context, sessionID kernel.SessionID, items []order.Item) error
	SaveAddress(ctx context.Context, sessionID kernel.SessionID, address order.ShippingAddress) error
	SaveTotal(ctx context.Context, sessionID kernel.SessionID, total int64) error

	// LoadDraft reads every staged field for sessionID. Fields never staged are
	// unset in the returned draft; a session with nothing staged yields an empty
	// draft, not an error.
	LoadDraft(ctx context.Context, sessionID kernel.SessionID) (order.Draft, error)
}
