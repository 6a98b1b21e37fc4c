package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrLoadSnapshotCommandIsNotConstructed = errors.New(
		"LoadSnapshotCommand must be created via NewLoadSnapshotCommand constructor",
	)
)

// LoadSnapshotCommand replaces the engine's parcels with the persisted records.
type LoadSnapshotCommand struct {
	guard guard.ConstructorGuard
}

func NewLoadSnapshotCommand() LoadSnapshotCommand {
	return LoadSnapshotCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c LoadSnapshotCommand) Validate() error {
	return c.guard.Validate(ErrLoadSnapshotCommandIsNotConstructed)
}
