package queries

import (
	"errors"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrListValidOrdersQueryIsNotConstructed = errors.New(
	"ListValidOrdersQuery must be created via NewListValidOrdersQuery constructor",
)

// ListValidOrdersQuery lists every displayable order as observed at now.
//
// Example:
//
//	query, _ := NewListValidOrdersQuery(clock.Now())
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, o := range orders {
//	    fmt.Printf("%s %s\n", o.OrderID, o.ShippingStatus)
//	}
type ListValidOrdersQuery struct {
	now time.Time

	guard guard.ConstructorGuard
}

func NewListValidOrdersQuery(now time.Time) (ListValidOrdersQuery, error) {
	if now.IsZero() {
		return ListValidOrdersQuery{}, errs.NewValueIsRequiredError("now")
	}
	return ListValidOrdersQuery{now: now, guard: guard.NewConstructorGuard()}, nil
}

func (q ListValidOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListValidOrdersQueryIsNotConstructed)
}

func (q ListValidOrdersQuery) Now() time.Time {
	return q.now
}
