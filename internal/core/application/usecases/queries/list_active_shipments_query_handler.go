package queries

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

type ListActiveShipmentsQueryHandler struct {
	engine *services.DispatchEngine
}

func NewListActiveShipmentsQueryHandler(engine *services.DispatchEngine) ListActiveShipmentsQueryHandler {
	return ListActiveShipmentsQueryHandler{engine: engine}
}

func (h ListActiveShipmentsQueryHandler) Handle(ctx context.Context, query ListActiveShipmentsQuery) ([]services.ActiveShipment, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return h.engine.ActiveShipments(), nil
}
