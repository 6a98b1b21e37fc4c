package queries

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// GetParcelQueryHandler reads a parcel from the engine.
type GetParcelQueryHandler struct {
	engine *services.DispatchEngine
}

func NewGetParcelQueryHandler(engine *services.DispatchEngine) GetParcelQueryHandler {
	return GetParcelQueryHandler{engine: engine}
}

// Handle returns services.ErrParcelNotFound for unknown tracking IDs.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (GetParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelQueryResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return GetParcelQueryResponse{}, err
	}

	view, err := h.engine.Lookup(query.TrackingID())
	if err != nil {
		return GetParcelQueryResponse{}, err
	}

	resp := GetParcelQueryResponse{Parcel: view}
	if view.Status.IsMoving() {
		for _, s := range h.engine.ActiveShipments() {
			if s.Parcel.ID == view.ID {
				resp.Progress = s.Progress
				break
			}
		}
	}
	return resp, nil
}
