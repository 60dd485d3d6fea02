package commands

import (
	"errors"
	"fmt"
	"slices"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrStartCheckoutCommandIsNotConstructed = errors.New(
	"StartCheckoutCommand must be created via NewStartCheckoutCommand constructor",
)

// StartCheckoutCommand opens a new checkout attempt for a cart.
//
// Example:
//
//	item, _ := order.NewItem("p1", "Ao dai", 10000, 2, "")
//	cmd, err := NewStartCheckoutCommand([]order.Item{item}, 20000)
//	if err != nil {
//	    return err
//	}
//	sessionID, err := handler.Handle(ctx, cmd)
type StartCheckoutCommand struct { //nolint:recvcheck //using for validation
	items []order.Item
	total int64

	guard guard.ConstructorGuard
}

// NewStartCheckoutCommand creates the command. The cart must not be empty.
func NewStartCheckoutCommand(items []order.Item, total int64) (StartCheckoutCommand, error) {
	var problems []error
	if len(items) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("items"))
	}
	if total < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%d is negative", total)))
	}
	if err := errors.Join(problems...); err != nil {
		return StartCheckoutCommand{}, err
	}

	return StartCheckoutCommand{
		items: slices.Clone(items),
		total: total,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c StartCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrStartCheckoutCommandIsNotConstructed)
}

func (c StartCheckoutCommand) Items() []order.Item { return slices.Clone(c.items) }
func (c StartCheckoutCommand) Total() int64        { return c.total }
