package queries

import (
	"context"
	"errors"
	"log/slog"

	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

// TrackParcelQueryHandler reads through the tracking cache. A miss or a cache
// failure falls back to the engine, and a successful engine lookup is written
// back to the cache.
type TrackParcelQueryHandler struct {
	engine *services.DispatchEngine
	cache  ports.TrackingCache
	logger *slog.Logger
}

// NewTrackParcelQueryHandler creates the handler. cache may be nil, in which
// case every lookup goes to the engine.
func NewTrackParcelQueryHandler(engine *services.DispatchEngine, cache ports.TrackingCache, logger *slog.Logger) TrackParcelQueryHandler {
	return TrackParcelQueryHandler{
		engine: engine,
		cache:  cache,
		logger: logger.With("component", "track_parcel_query"),
	}
}

func (h TrackParcelQueryHandler) Handle(ctx context.Context, query TrackParcelQuery) (TrackParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	if h.cache != nil {
		summary, err := h.cache.Get(ctx, query.TrackingID())
		switch {
		case err == nil:
			return TrackParcelQueryResponse{Summary: summary, Cached: true}, nil
		case !errors.Is(err, ports.ErrTrackingSummaryNotCached):
			h.logger.WarnContext(ctx, "tracking cache read failed", "parcel_id", query.TrackingID(), "error", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	view, err := h.engine.Lookup(query.TrackingID())
	if err != nil {
		return TrackParcelQueryResponse{}, err
	}

	summary := ports.NewTrackingSummary(view)
	if h.cache != nil {
		if err = h.cache.Put(ctx, summary); err != nil {
			h.logger.WarnContext(ctx, "tracking cache write failed", "parcel_id", view.ID, "error", err)
		}
	}
	return TrackParcelQueryResponse{Summary: summary}, nil
}
