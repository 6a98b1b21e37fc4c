package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/network"
	"parceltrack/internal/core/domain/services"
)

type GetNetworkQueryHandler struct {
	engine *services.DispatchEngine
}

func NewGetNetworkQueryHandler(engine *services.DispatchEngine) GetNetworkQueryHandler {
	return GetNetworkQueryHandler{engine: engine}
}

func (h GetNetworkQueryHandler) Handle(ctx context.Context, query GetNetworkQuery) (network.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return network.Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return network.Snapshot{}, err
	}

	return h.engine.Network(), nil
}
