package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// IntakeParcelCommandHandler stores a parcel and queues it for dispatch.
type IntakeParcelCommandHandler struct {
	engine *services.DispatchEngine
}

func NewIntakeParcelCommandHandler(engine *services.DispatchEngine) IntakeParcelCommandHandler {
	return IntakeParcelCommandHandler{engine: engine}
}

// Handle returns the stored parcel in Warehouse status. Duplicate IDs and
// destinations outside the network are rejected without changing state.
func (h *IntakeParcelCommandHandler) Handle(ctx context.Context, cmd IntakeParcelCommand) (parcel.View, error) {
	if err := cmd.Validate(); err != nil {
		return parcel.View{}, err
	}
	if err := ctx.Err(); err != nil {
		return parcel.View{}, err
	}

	return h.engine.Intake(cmd.TrackingID(), cmd.Destination(), cmd.Weight(), cmd.Priority())
}
