package commands

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
)

// StartCheckoutCommandHandler mints a session identifier and stages the cart under it.
type StartCheckoutCommandHandler struct {
	stageCart StageCartCommandHandler
	clock     kernel.Clock
}

func NewStartCheckoutCommandHandler(drafts ports.DraftRepository, clock kernel.Clock) StartCheckoutCommandHandler {
	return StartCheckoutCommandHandler{
		stageCart: NewStageCartCommandHandler(drafts),
		clock:     clock,
	}
}

// Handle returns the new session ID. The caller hands it to the payment
// provider and to every later checkout step.
func (h StartCheckoutCommandHandler) Handle(ctx context.Context, cmd StartCheckoutCommand) (kernel.SessionID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.SessionID{}, err
	}

	sessionID := kernel.NewSessionID(h.clock.Now())
	stage, err := NewStageCartCommand(sessionID, cmd.Items(), cmd.Total())
	if err != nil {
		return kernel.SessionID{}, err
	}
	if err = h.stageCart.Handle(ctx, stage); err != nil {
		return kernel.SessionID{}, err
	}

	return sessionID, nil
}
