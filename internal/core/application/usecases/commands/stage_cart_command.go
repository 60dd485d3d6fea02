package commands

import (
	"errors"
	"fmt"
	"slices"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrStageCartCommandIsNotConstructed = errors.New(
	"StageCartCommand must be created via NewStageCartCommand constructor",
)

// StageCartCommand records the cart summary of a checkout attempt: the items
// being bought and the total shown to the shopper. Nothing is validated
// against each other here; the assembler does that on confirmation.
type StageCartCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.SessionID
	items     []order.Item
	total     int64

	guard guard.ConstructorGuard
}

// NewStageCartCommand creates the command. total must not be negative.
func NewStageCartCommand(sessionID kernel.SessionID, items []order.Item, total int64) (StageCartCommand, error) {
	cmd := StageCartCommand{
		items: slices.Clone(items),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setTotal(total),
	); err != nil {
		return StageCartCommand{}, err
	}

	return cmd, nil
}

func (c StageCartCommand) Validate() error {
	return c.guard.Validate(ErrStageCartCommandIsNotConstructed)
}

func (c StageCartCommand) SessionID() kernel.SessionID { return c.sessionID }
func (c StageCartCommand) Items() []order.Item         { return slices.Clone(c.items) }
func (c StageCartCommand) Total() int64                { return c.total }

func (c *StageCartCommand) setSessionID(sessionID kernel.SessionID) error {
	if err := sessionID.Validate(); err != nil {
		return err
	}
	c.sessionID = sessionID
	return nil
}

func (c *StageCartCommand) setTotal(total int64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%d is negative", total))
	}
	c.total = total
	return nil
}
