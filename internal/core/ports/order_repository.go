// Package ports defines the contracts between the order engine and its
// infrastructure: persistence of finalized orders and checkout drafts, the raw
// key-value space they share, and order-change notifications.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository persists finalized orders keyed by session ID together with
// the index of known session IDs.
//
// Each call is atomic from the caller's perspective; there are no transactions.
type OrderRepository interface {
	// Put stores the order in full, replacing any previous record for the same
	// session ID, and adds the session ID to the index if it is not there yet.
	Put(ctx context.Context, aggregate *order.Order) error

	// Get returns the order stored for sessionID.
	// Returns errs.ObjectNotFoundError when there is no record and
	// errs.RecordIsCorruptError when the stored record cannot be decoded.
	Get(ctx context.Context, sessionID kernel.SessionID) (*order.Order, error)

	// ListIndexed returns the indexed session IDs in insertion order, without
	// duplicates. A missing or unreadable index is rebuilt from the stored
	// records first; a stored empty index is returned as is.
	ListIndexed(ctx context.Context) ([]kernel.SessionID, error)

	// RebuildIndex reconstructs the index by scanning the stored order records
	// and returns the recovered session IDs. Entries already indexed keep their
	// position.
	RebuildIndex(ctx context.Context) ([]kernel.SessionID, error)
}
