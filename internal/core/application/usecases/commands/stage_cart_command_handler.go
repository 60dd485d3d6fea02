package commands

import (
	"context"

	"storefront/internal/core/ports"
)

// StageCartCommandHandler writes the items and total staging keys.
type StageCartCommandHandler struct {
	drafts ports.DraftRepository
}

func NewStageCartCommandHandler(drafts ports.DraftRepository) StageCartCommandHandler {
	return StageCartCommandHandler{drafts: drafts}
}

// Handle overwrites the staged items and total of the session.
func (h StageCartCommandHandler) Handle(ctx context.Context, cmd StageCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.drafts.SaveItems(ctx, cmd.SessionID(), cmd.Items()); err != nil {
		return err
	}
	return h.drafts.SaveTotal(ctx, cmd.SessionID(), cmd.Total())
}
