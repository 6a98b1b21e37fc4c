package commands

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

// SaveSnapshotCommandHandler writes the engine's records in one transaction
// and then publishes tracking summaries.
//
// Example:
//
//	handler := NewSaveSnapshotCommandHandler(engine, uowFactory, cache)
//	if err := handler.Handle(ctx, NewSaveSnapshotCommand()); err != nil {
//	    return fmt.Errorf("snapshot failed: %w", err)
//	}
type SaveSnapshotCommandHandler struct {
	engine     *services.DispatchEngine
	uowFactory RecordUoWFactory
	cache      ports.TrackingCache
}

// NewSaveSnapshotCommandHandler creates the handler. cache may be nil.
func NewSaveSnapshotCommandHandler(
	engine *services.DispatchEngine,
	uowFactory RecordUoWFactory,
	cache ports.TrackingCache,
) SaveSnapshotCommandHandler {
	return SaveSnapshotCommandHandler{
		engine:     engine,
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle commits the records before touching the cache, so a cache failure
// never loses a snapshot.
func (h *SaveSnapshotCommandHandler) Handle(ctx context.Context, cmd SaveSnapshotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	records := h.engine.Snapshot()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ParcelRecordRepository().ReplaceAll(ctx, records); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if h.cache == nil {
		return nil
	}

	views := h.engine.List()
	summaries := make([]ports.TrackingSummary, 0, len(views))
	for _, v := range views {
		summaries = append(summaries, ports.NewTrackingSummary(v))
	}
	if len(summaries) == 0 {
		return nil
	}

	if err := h.cache.Put(ctx, summaries...); err != nil {
		return fmt.Errorf("snapshot saved, cache refresh failed: %w", err)
	}

	return nil
}
