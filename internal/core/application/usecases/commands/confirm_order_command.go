package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand finalizes a checkout after the payment provider has
// reported success.
//
// payment carries the fields the provider echoed back (any subset of items,
// total and address). They are merged over the staged draft, later writes
// winning per field.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.SessionID
	payment   order.Draft

	guard guard.ConstructorGuard
}

func NewConfirmOrderCommand(sessionID kernel.SessionID, payment order.Draft) (ConfirmOrderCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return ConfirmOrderCommand{
		sessionID: sessionID,
		payment:   payment,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) SessionID() kernel.SessionID { return c.sessionID }
func (c ConfirmOrderCommand) Payment() order.Draft        { return c.payment }
