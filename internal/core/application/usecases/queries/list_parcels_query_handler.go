package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

type ListParcelsQueryHandler struct {
	engine *services.DispatchEngine
}

func NewListParcelsQueryHandler(engine *services.DispatchEngine) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{engine: engine}
}

// Handle never returns nil on success; an empty store yields an empty slice.
func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) ([]parcel.View, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := h.engine.List()
	status, ok := query.Status()
	if !ok {
		return all, nil
	}

	out := make([]parcel.View, 0, len(all))
	for _, v := range all {
		if v.Status == status {
			out = append(out, v)
		}
	}
	return out, nil
}
