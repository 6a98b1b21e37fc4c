package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrUndoLastActionCommandIsNotConstructed = errors.New(
		"UndoLastActionCommand must be created via NewUndoLastActionCommand constructor",
	)
)

// UndoLastActionCommand reverts the most recent intake or dispatch.
type UndoLastActionCommand struct {
	guard guard.ConstructorGuard
}

func NewUndoLastActionCommand() UndoLastActionCommand {
	return UndoLastActionCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c UndoLastActionCommand) Validate() error {
	return c.guard.Validate(ErrUndoLastActionCommandIsNotConstructed)
}
