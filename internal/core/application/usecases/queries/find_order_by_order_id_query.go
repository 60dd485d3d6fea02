package queries

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrFindOrderByOrderIDQueryIsNotConstructed = errors.New(
	"FindOrderByOrderIDQuery must be created via NewFindOrderByOrderIDQuery constructor",
)

// FindOrderByOrderIDQuery looks up a displayable order by its derived order ID
// ("ORD-" plus six characters), as shown to the shopper after checkout.
type FindOrderByOrderIDQuery struct {
	orderID string
	now     time.Time

	guard guard.ConstructorGuard
}

func NewFindOrderByOrderIDQuery(orderID string, now time.Time) (FindOrderByOrderIDQuery, error) {
	orderID = strings.TrimSpace(orderID)

	var problems []error
	if orderID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("orderId"))
	}
	if now.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("now"))
	}
	if err := errors.Join(problems...); err != nil {
		return FindOrderByOrderIDQuery{}, err
	}

	return FindOrderByOrderIDQuery{orderID: orderID, now: now, guard: guard.NewConstructorGuard()}, nil
}

func (q FindOrderByOrderIDQuery) Validate() error {
	return q.guard.Validate(ErrFindOrderByOrderIDQueryIsNotConstructed)
}

func (q FindOrderByOrderIDQuery) OrderID() string { return q.orderID }
func (q FindOrderByOrderIDQuery) Now() time.Time  { return q.now }
