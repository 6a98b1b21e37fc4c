package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrReopenRoadsCommandIsNotConstructed = errors.New(
		"ReopenRoadsCommand must be created via NewReopenRoadsCommand constructor",
	)
)

// ReopenRoadsCommand clears every road blockage in the delivery network.
type ReopenRoadsCommand struct {
	guard guard.ConstructorGuard
}

func NewReopenRoadsCommand() ReopenRoadsCommand {
	return ReopenRoadsCommand{guard: guard.NewConstructorGuard()}
}

func (c ReopenRoadsCommand) Validate() error {
	return c.guard.Validate(ErrReopenRoadsCommandIsNotConstructed)
}
