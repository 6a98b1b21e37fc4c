package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrSaveSnapshotCommandIsNotConstructed = errors.New(
		"SaveSnapshotCommand must be created via NewSaveSnapshotCommand constructor",
	)
)

// SaveSnapshotCommand persists every parcel record and refreshes the tracking
// cache.
type SaveSnapshotCommand struct {
	guard guard.ConstructorGuard
}

func NewSaveSnapshotCommand() SaveSnapshotCommand {
	return SaveSnapshotCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c SaveSnapshotCommand) Validate() error {
	return c.guard.Validate(ErrSaveSnapshotCommandIsNotConstructed)
}
