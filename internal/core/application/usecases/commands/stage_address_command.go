package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrStageAddressCommandIsNotConstructed = errors.New(
	"StageAddressCommand must be created via NewStageAddressCommand constructor",
)

// StageAddressCommand records the shipping address entered at the shipping
// step. Incomplete addresses are accepted; completeness is checked on confirmation.
type StageAddressCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.SessionID
	address   order.ShippingAddress

	guard guard.ConstructorGuard
}

func NewStageAddressCommand(sessionID kernel.SessionID, address order.ShippingAddress) (StageAddressCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return StageAddressCommand{}, err
	}

	return StageAddressCommand{
		sessionID: sessionID,
		address:   address,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c StageAddressCommand) Validate() error {
	return c.guard.Validate(ErrStageAddressCommandIsNotConstructed)
}

func (c StageAddressCommand) SessionID() kernel.SessionID    { return c.sessionID }
func (c StageAddressCommand) Address() order.ShippingAddress { return c.address }
