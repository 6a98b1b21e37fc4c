package commands

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// DispatchNextCommandHandler pulls the next parcel off the dispatch queue,
// assigns a rider and a route, and puts the parcel into Loading.
//
// Example:
//
//	handler := NewDispatchNextCommandHandler(engine)
//	result, err := handler.Handle(ctx, NewDispatchNextCommand())
//	if errors.Is(err, services.ErrQueueEmpty) {
//	    return nil
//	}
type DispatchNextCommandHandler struct {
	engine *services.DispatchEngine
}

func NewDispatchNextCommandHandler(engine *services.DispatchEngine) DispatchNextCommandHandler {
	return DispatchNextCommandHandler{engine: engine}
}

// Handle returns services.ErrQueueEmpty, rider.ErrNoRiderAvailable or
// services.ErrNoRoute when nothing can be shipped; state is unchanged then.
func (h *DispatchNextCommandHandler) Handle(ctx context.Context, cmd DispatchNextCommand) (services.DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return services.DispatchResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return services.DispatchResult{}, err
	}

	return h.engine.DispatchNext(cmd.selector())
}
