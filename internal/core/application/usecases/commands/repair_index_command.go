package commands

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrRepairIndexCommandIsNotConstructed = errors.New(
	"RepairIndexCommand must be created via NewRepairIndexCommand constructor",
)

// RepairIndexCommand reconciles the order index with the stored records. It
// is run once at startup to recover from partial or legacy writes.
type RepairIndexCommand struct {
	guard guard.ConstructorGuard
}

func NewRepairIndexCommand() RepairIndexCommand {
	return RepairIndexCommand{guard: guard.NewConstructorGuard()}
}

func (c RepairIndexCommand) Validate() error {
	return c.guard.Validate(ErrRepairIndexCommandIsNotConstructed)
}
