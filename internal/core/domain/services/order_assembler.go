package services

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

var (
	// ErrIncompleteOrder means a required field (items, total or an address
	// field) was never staged. The shopper must go back and supply it.
	ErrIncompleteOrder = errors.New("order is incomplete")

	// ErrTotalMismatch means the staged total differs from the item subtotals.
	ErrTotalMismatch = errors.New("order total does not match items")

	// ErrTotalOutOfRange means the total is outside the accepted payment range.
	ErrTotalOutOfRange = errors.New("order total is out of range")

	// ErrUnsupportedCountry means the address is outside the served country.
	ErrUnsupportedCountry = errors.New("shipping country is not supported")
)

// AssemblyPolicy holds the deployment-specific acceptance rules.
type AssemblyPolicy struct {
	// SupportedCountry is the only country code orders may ship to.
	SupportedCountry string

	// MinTotal and MaxTotal bound the order total, inclusive, in minor units.
	MinTotal int64
	MaxTotal int64
}

// DefaultAssemblyPolicy accepts Vietnamese addresses and totals from 1 000 to 99 999 999 VND.
func DefaultAssemblyPolicy() AssemblyPolicy {
	return AssemblyPolicy{SupportedCountry: "VN", MinTotal: 1000, MaxTotal: 99_999_999}
}

// OrderAssembler turns a checkout draft into a finalized order.
//
// Business rules, checked in this order:
//   - items, total and every address field must be staged (ErrIncompleteOrder)
//   - total must equal the sum of the item subtotals exactly, and that sum
//     must not overflow (ErrTotalMismatch)
//   - total must lie within the policy bounds (ErrTotalOutOfRange)
//   - the address country must be the supported one (ErrUnsupportedCountry)
//
// createdAt is fixed by the first successful assembly: re-assembling a session
// that already has a finalized order keeps that order's createdAt.
type OrderAssembler struct {
	policy AssemblyPolicy
}

// NewOrderAssembler creates an assembler enforcing policy.
func NewOrderAssembler(policy AssemblyPolicy) OrderAssembler {
	return OrderAssembler{policy: policy}
}

// Assemble builds the order for sessionID from draft.
//
// Parameters:
//   - sessionID: the checkout being confirmed
//   - draft: the merged partial writes
//   - previous: the finalized order already stored for sessionID, or nil
//   - now: confirmation time, used as createdAt on first assembly
//
// The createdAt of the result is previous.CreatedAt() when previous is set,
// else the createdAt recorded in the draft, else now.
func (a OrderAssembler) Assemble(
	sessionID kernel.SessionID,
	draft order.Draft,
	previous *order.Order,
	now time.Time,
) (*order.Order, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, err
	}

	items, hasItems := draft.Items()
	total, hasTotal := draft.Total()
	address, hasAddress := draft.Address()

	var missing []error
	if !hasItems || len(items) == 0 {
		missing = append(missing, errs.NewValueIsRequiredError("items"))
	}
	if !hasTotal {
		missing = append(missing, errs.NewValueIsRequiredError("total"))
	}
	if !hasAddress {
		missing = append(missing, errs.NewValueIsRequiredError("shippingAddress"))
	} else if !address.IsComplete() {
		missing = append(missing, address.Validate(address.Country()))
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrIncompleteOrder, errors.Join(missing...))
	}

	sum, err := order.SumItems(items)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTotalMismatch, err)
	}
	if sum != total {
		return nil, fmt.Errorf("%w: %w", ErrTotalMismatch, errs.NewValueIsInvalidErrorWithCause(
			"total", fmt.Errorf("staged %d, items sum to %d", total, sum)))
	}

	if total < a.policy.MinTotal || total > a.policy.MaxTotal {
		return nil, fmt.Errorf("%w: %w", ErrTotalOutOfRange,
			errs.NewValueIsOutOfRangeError("total", total, a.policy.MinTotal, a.policy.MaxTotal))
	}

	if err := address.Validate(a.policy.SupportedCountry); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedCountry, err)
	}

	return order.NewOrder(sessionID, items, address, total, a.createdAt(draft, previous, now), now)
}

func (a OrderAssembler) createdAt(draft order.Draft, previous *order.Order, now time.Time) time.Time {
	if previous != nil && previous.Validate() == nil {
		return previous.CreatedAt()
	}
	if createdAt, ok := draft.CreatedAt(); ok && !createdAt.IsZero() {
		return createdAt
	}
	return now
}
