package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// StageAddressCommandHandler writes the address staging key.
type StageAddressCommandHandler struct {
	drafts ports.DraftRepository
}

func NewStageAddressCommandHandler(drafts ports.DraftRepository) StageAddressCommandHandler {
	return StageAddressCommandHandler{drafts: drafts}
}

func (h StageAddressCommandHandler) Handle(ctx context.Context, cmd StageAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.drafts.SaveAddress(ctx, cmd.SessionID(), cmd.Address())
}
