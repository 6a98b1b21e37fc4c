package commands

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// AdvanceLifecycleCommandHandler drives the shipment ledger sweep. Repeating
// a command with the same instant changes nothing.
type AdvanceLifecycleCommandHandler struct {
	engine *services.DispatchEngine
}

func NewAdvanceLifecycleCommandHandler(engine *services.DispatchEngine) AdvanceLifecycleCommandHandler {
	return AdvanceLifecycleCommandHandler{engine: engine}
}

// Handle returns the transitions applied by the sweep, in ledger order.
func (h *AdvanceLifecycleCommandHandler) Handle(ctx context.Context, cmd AdvanceLifecycleCommand) ([]services.Transition, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return h.engine.Tick(cmd.Now()), nil
}
