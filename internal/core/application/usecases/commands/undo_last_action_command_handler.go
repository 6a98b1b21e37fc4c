package commands

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// UndoLastActionCommandHandler pops the undo ledger. An undone intake cancels
// the parcel; an undone dispatch recalls it to the warehouse queue.
type UndoLastActionCommandHandler struct {
	engine *services.DispatchEngine
}

func NewUndoLastActionCommandHandler(engine *services.DispatchEngine) UndoLastActionCommandHandler {
	return UndoLastActionCommandHandler{engine: engine}
}

// Handle returns services.ErrNothingToUndo on an empty ledger.
func (h *UndoLastActionCommandHandler) Handle(ctx context.Context, cmd UndoLastActionCommand) (services.UndoOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return services.UndoOutcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return services.UndoOutcome{}, err
	}

	return h.engine.Undo()
}
