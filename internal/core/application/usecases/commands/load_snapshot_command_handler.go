package commands

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// LoadSnapshotCommandHandler restores parcels from the record repository.
// Warehouse records rejoin the dispatch queue and in-pipeline records rejoin
// the shipment ledger.
type LoadSnapshotCommandHandler struct {
	engine     *services.DispatchEngine
	uowFactory RecordUoWFactory
}

func NewLoadSnapshotCommandHandler(engine *services.DispatchEngine, uowFactory RecordUoWFactory) LoadSnapshotCommandHandler {
	return LoadSnapshotCommandHandler{
		engine:     engine,
		uowFactory: uowFactory,
	}
}

// Handle replaces the engine state with the stored records. Records the engine
// rejects are skipped and reported in the result. A repository failure leaves
// the engine untouched.
func (h *LoadSnapshotCommandHandler) Handle(ctx context.Context, cmd LoadSnapshotCommand) (services.RestoreResult, error) {
	if err := cmd.Validate(); err != nil {
		return services.RestoreResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.RestoreResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	records, err := uow.ParcelRecordRepository().LoadAll(ctx)
	if err != nil {
		return services.RestoreResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.RestoreResult{}, err
	}

	return h.engine.Restore(records), nil
}
