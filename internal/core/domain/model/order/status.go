package order

import (
	"fmt"
	"time"

	"storefront/internal/pkg/errs"
)

// Status represents the shipping state of a placed order.
//
// Status is never the source of truth: it is a pure function of the order's
// createdAt and the current time (see DeriveStatus). The value stored with a
// record is a cache that readers recompute and rewrite when it is stale.
//
// Progression over elapsed whole days since creation:
//
//	day 0..1      day 2       day 3..4        day 5+
//	Processing ─> Shipped ─> InTransit ─> Delivered
//
// The ordering of the constants is significant: for a fixed createdAt the
// derived status never moves to a smaller value as time advances.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values and unreadable
	// cached values; it is always replaced on the next refresh.
	Unknown Status = iota

	// Processing is the status for the first two calendar days after creation.
	Processing

	// Shipped covers day 2.
	Shipped

	// InTransit covers days 3 and 4.
	InTransit

	// Delivered is reached once more than four whole days have elapsed.
	Delivered
)

const (
	day = 24 * time.Hour

	// DeliveryWindow is the fixed offset between creation and the estimated
	// delivery date. It does not depend on the current status.
	DeliveryWindow = 5 * day
)

// statusThresholds maps the largest number of elapsed whole days to the status
// that still applies. Anything beyond the last row is Delivered.
var statusThresholds = []struct {
	maxDays int64
	status  Status
}{
	{maxDays: 1, status: Processing},
	{maxDays: 2, status: Shipped},
	{maxDays: 4, status: InTransit},
}

// DeriveStatus computes the shipping status for an order created at createdAt
// as observed at now.
//
// The number of elapsed days is floor((now - createdAt) / 24h). A createdAt in
// the future (clock skew) yields Processing.
//
// Example:
//
//	created := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
//	order.DeriveStatus(created, created.Add(72*time.Hour)) // InTransit
func DeriveStatus(createdAt, now time.Time) Status {
	elapsed := now.Sub(createdAt)
	if elapsed < 0 {
		return Processing
	}

	days := int64(elapsed / day)
	for _, threshold := range statusThresholds {
		if days <= threshold.maxDays {
			return threshold.status
		}
	}
	return Delivered
}

// DeriveEstimatedDelivery returns createdAt plus DeliveryWindow.
func DeriveEstimatedDelivery(createdAt time.Time) time.Time {
	return createdAt.Add(DeliveryWindow)
}

// getStatusStrings returns a map of Status values to their string representations.
// The strings double as the persisted and wire representation.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Processing: "Processing",
		Shipped:    "Shipped",
		InTransit:  "InTransit",
		Delivered:  "Delivered",
	}
}

// Validate checks if the Status value is one of the four shipping states.
//
// Returns:
//   - nil if the status is valid
//   - ValueIsInvalidError if the status is Unknown or out of range
func (s Status) Validate() error {
	if s < Processing || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the name of the status, or "Unknown" for invalid values.
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses the persisted representation produced by String.
// Unrecognized input returns Unknown together with an error; callers reading
// cached values may keep the Unknown and let the next refresh correct it.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// IsAfter reports whether s is a later stage than other.
func (s Status) IsAfter(other Status) bool {
	return s > other
}
