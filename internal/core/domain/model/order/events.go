package order

import "time"

// ChangeReason tells subscribers why an order-changed event was emitted.
type ChangeReason string

const (
	ReasonConfirmed       ChangeReason = "confirmed"
	ReasonStatusRefreshed ChangeReason = "status_refreshed"
)

// ChangedEvent is published whenever a finalized order is written: on
// confirmation and whenever a refresh rewrites a stale cached status.
type ChangedEvent struct {
	SessionID      string
	OrderID        string
	TrackingNumber string
	Status         Status
	PreviousStatus Status
	Reason         ChangeReason
	OccurredAt     time.Time
}

// NewChangedEvent snapshots o for publication. previous is the status before
// the write (Unknown for a newly confirmed order).
func NewChangedEvent(o *Order, previous Status, reason ChangeReason, at time.Time) ChangedEvent {
	return ChangedEvent{
		SessionID:      o.SessionID().String(),
		OrderID:        o.OrderID(),
		TrackingNumber: o.TrackingNumber(),
		Status:         o.ShippingStatus(),
		PreviousStatus: previous,
		Reason:         reason,
		OccurredAt:     at,
	}
}
