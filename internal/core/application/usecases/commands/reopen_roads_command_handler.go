package commands

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// ReopenRoadsCommandHandler lifts live blockages so queued parcels that had no
// route can be dispatched again.
type ReopenRoadsCommandHandler struct {
	engine *services.DispatchEngine
}

func NewReopenRoadsCommandHandler(engine *services.DispatchEngine) ReopenRoadsCommandHandler {
	return ReopenRoadsCommandHandler{engine: engine}
}

// Handle returns the reopened roads as city name pairs; none is not an error.
func (h *ReopenRoadsCommandHandler) Handle(ctx context.Context, cmd ReopenRoadsCommand) ([][2]string, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return h.engine.ReopenRoads(), nil
}
