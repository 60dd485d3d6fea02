package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

const (
	// OrderIDPrefix is prepended to the session suffix to form the display order ID.
	OrderIDPrefix = "ORD-"

	// TrackingNumberPrefix is prepended to the session suffix to form the tracking number.
	TrackingNumberPrefix = "TRACK-"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the canonical record of a completed purchase, keyed by the session
// identifier of the checkout that produced it.
//
// Order follows these invariants:
//   - sessionID is valid; orderID and trackingNumber are pure functions of it
//   - createdAt is set once, when the order is first assembled, and never changes
//   - shippingStatus and estimatedDelivery are caches of DeriveStatus and
//     DeriveEstimatedDelivery over createdAt; RefreshStatus reconciles them
//
// total is expected to equal the sum of the item subtotals. NewOrder does not
// enforce it (the assembler does); ValidateForDisplay checks it on the read path.
type Order struct {
	// sessionID identifies the checkout attempt and keys the record in storage
	sessionID kernel.SessionID

	// items are the purchased lines, in cart order
	items []Item

	// total is the charged amount in minor currency units
	total int64

	// shippingAddress is the delivery destination
	shippingAddress ShippingAddress

	// shippingStatus is the cached derived status
	shippingStatus Status

	// estimatedDelivery is the cached derived delivery estimate
	estimatedDelivery time.Time

	// createdAt is the instant the order was first assembled
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an order at assembly time. The shipping status and
// estimated delivery are derived from createdAt as observed at now.
//
// Parameters:
//   - sessionID: identifier of the checkout (must be valid)
//   - items: purchased lines (must be non-empty)
//   - address: destination, stored as given
//   - total: charged amount in minor units (must not be negative)
//   - createdAt: creation instant (must not be zero)
//   - now: the observation time used to derive the status
//
// Example:
//
//	item, _ := order.NewItem("p1", "Sneakers", 10000, 2, "")
//	addr := order.NewShippingAddress("An", "1 Le Loi", "HCMC", "700000", "VN")
//	o, err := order.NewOrder(sessionID, []order.Item{item}, addr, 20000, now, now)
func NewOrder(
	sessionID kernel.SessionID,
	items []Item,
	address ShippingAddress,
	total int64,
	createdAt time.Time,
	now time.Time,
) (*Order, error) {
	o := &Order{
		shippingAddress: address,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setSessionID(sessionID),
		o.setItems(items),
		o.setTotal(total),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.shippingStatus = DeriveStatus(o.createdAt, now)
	o.estimatedDelivery = DeriveEstimatedDelivery(o.createdAt)
	return o, nil
}

// RestoreOrder rebuilds an order from persistence.
//
// Unlike NewOrder it accepts an empty item list, a zero total, an incomplete
// address and an Unknown cached status: such records exist in storage and must
// be loadable so the read path can filter them out instead of failing. Only
// the identity and the creation time are required.
func RestoreOrder(
	sessionID kernel.SessionID,
	items []Item,
	address ShippingAddress,
	total int64,
	cachedStatus Status,
	cachedEstimatedDelivery time.Time,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		items:             slices.Clone(items),
		total:             total,
		shippingAddress:   address,
		shippingStatus:    cachedStatus,
		estimatedDelivery: cachedEstimatedDelivery,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setSessionID(sessionID),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// SessionID returns the checkout identifier that keys this order.
func (o *Order) SessionID() kernel.SessionID {
	return o.sessionID
}

// OrderID returns the display identifier derived from the session ID.
func (o *Order) OrderID() string {
	return DeriveOrderID(o.sessionID)
}

// TrackingNumber returns the display tracking number derived from the session ID.
func (o *Order) TrackingNumber() string {
	return DeriveTrackingNumber(o.sessionID)
}

// Items returns a copy of the purchased lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// Total returns the charged amount in minor currency units.
func (o *Order) Total() int64 {
	return o.total
}

// ItemsTotal returns the sum of the item subtotals. See SumItems for the overflow error.
func (o *Order) ItemsTotal() (int64, error) {
	return SumItems(o.items)
}

// ShippingAddress returns the delivery destination.
func (o *Order) ShippingAddress() ShippingAddress {
	return o.shippingAddress
}

// ShippingStatus returns the cached shipping status.
func (o *Order) ShippingStatus() Status {
	return o.shippingStatus
}

// EstimatedDelivery returns the cached delivery estimate.
func (o *Order) EstimatedDelivery() time.Time {
	return o.estimatedDelivery
}

// CreatedAt returns the instant the order was first assembled.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsValidAddress reports whether every address field is filled.
func (o *Order) IsValidAddress() bool {
	return o.shippingAddress.IsComplete()
}

// RefreshStatus recomputes the cached shipping status and estimated delivery
// for the observation time now.
//
// Returns true when either cached value changed, meaning the stored copy of
// this order is stale and should be rewritten.
func (o *Order) RefreshStatus(now time.Time) bool {
	status := DeriveStatus(o.createdAt, now)
	estimate := DeriveEstimatedDelivery(o.createdAt)

	changed := status != o.shippingStatus || !estimate.Equal(o.estimatedDelivery)
	o.shippingStatus = status
	o.estimatedDelivery = estimate
	return changed
}

// ValidateForDisplay checks whether the order may be shown in tracking views.
//
// An order is displayable when it has at least one item, a positive total that
// equals the item subtotals, and a complete address. All failed rules are
// reported together.
func (o *Order) ValidateForDisplay() error {
	var problems []error
	if len(o.items) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("items"))
	}
	if o.total <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"total", fmt.Errorf("%d is not greater than 0", o.total)))
	} else if len(o.items) > 0 {
		sum, err := o.ItemsTotal()
		switch {
		case err != nil:
			problems = append(problems, err)
		case sum != o.total:
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"total", fmt.Errorf("%d does not match item subtotals %d", o.total, sum)))
		}
	}
	if !o.IsValidAddress() {
		problems = append(problems, errs.NewValueIsRequiredError("shippingAddress"))
	}
	return errors.Join(problems...)
}

// DeriveOrderID returns "ORD-" followed by the last six characters of the session ID.
//
// The result is not globally unique: two sessions that share a six-character
// suffix map to the same order ID.
func DeriveOrderID(sessionID kernel.SessionID) string {
	return OrderIDPrefix + sessionID.Suffix()
}

// DeriveTrackingNumber returns "TRACK-" followed by the last six characters of the session ID.
func DeriveTrackingNumber(sessionID kernel.SessionID) string {
	return TrackingNumberPrefix + sessionID.Suffix()
}

func (o *Order) setSessionID(sessionID kernel.SessionID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}
	o.sessionID = sessionID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setTotal(total int64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%d is negative", total))
	}
	o.total = total
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
