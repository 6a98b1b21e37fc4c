package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// CancelParcelCommandHandler moves a Pickup Queue or Warehouse parcel to
// Cancelled and removes it from the dispatch queue.
type CancelParcelCommandHandler struct {
	engine *services.DispatchEngine
}

func NewCancelParcelCommandHandler(engine *services.DispatchEngine) CancelParcelCommandHandler {
	return CancelParcelCommandHandler{engine: engine}
}

// Handle returns an invariant violation for parcels already dispatched.
func (h *CancelParcelCommandHandler) Handle(ctx context.Context, cmd CancelParcelCommand) (parcel.View, error) {
	if err := cmd.Validate(); err != nil {
		return parcel.View{}, err
	}
	if err := ctx.Err(); err != nil {
		return parcel.View{}, err
	}

	return h.engine.Cancel(cmd.TrackingID())
}
