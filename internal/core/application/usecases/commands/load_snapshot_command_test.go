package commands_test

import (
	"errors"
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoadSnapshotCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	engine := newEngine(t)
	records := []parcel.Record{
		{ID: "W1", Destination: "Multan", Weight: 4, Priority: 1, Status: parcel.Warehouse, Zone: "Zone A"},
		{ID: "T1", Destination: "Karachi", Weight: 9, Priority: 2, Status: parcel.InTransit, Zone: "Zone C"},
		{ID: "D1", Destination: "Quetta", Weight: 1, Priority: 3, Status: parcel.Delivered, Zone: "Zone D"},
	}

	repo := new(MockParcelRecordRepository)
	uow := new(MockRecordUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRecordRepository").Return(repo).Once(),
		repo.On("LoadAll", ctx).Return(records, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRecordUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewLoadSnapshotCommandHandler(engine, factory)
	result, err := h.Handle(ctx, commands.NewLoadSnapshotCommand())
	require.NoError(t, err)
	assert.Equal(t, services.RestoreResult{Restored: 3}, result)

	stats := engine.Stats()
	assert.Equal(t, 3, stats.Parcels)
	assert.Equal(t, 1, stats.Queued)
	assert.Equal(t, 1, stats.Shipments)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestLoadSnapshotCommandHandler_Handle_SkipsRejectedRecords(t *testing.T) {
	ctx := t.Context()
	engine := newEngine(t)

	repo := new(MockParcelRecordRepository)
	uow := new(MockRecordUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRecordRepository").Return(repo).Once(),
		repo.On("LoadAll", ctx).Return([]parcel.Record{
			{ID: "P1", Destination: "Karachi", Weight: 3.5, Priority: 1, Status: parcel.Warehouse, Zone: "Zone C"},
			{ID: "P2", Destination: "Atlantis", Weight: 2, Priority: 1, Status: parcel.Warehouse, Zone: "X"},
		}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRecordUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewLoadSnapshotCommandHandler(engine, factory)
	result, err := h.Handle(ctx, commands.NewLoadSnapshotCommand())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Restored)
	assert.Equal(t, 1, result.Skipped)
	require.ErrorIs(t, result.Rejected, services.ErrUnknownDestination)

	v, err := engine.Lookup("P1")
	require.NoError(t, err)
	assert.Equal(t, parcel.Warehouse, v.Status)
	assert.Equal(t, []parcel.Record{
		{ID: "P1", Destination: "Karachi", Weight: 3.5, Priority: 1, Status: parcel.Warehouse, Zone: "Zone C"},
	}, engine.Snapshot())
	uow.AssertExpectations(t)
}

func TestLoadSnapshotCommandHandler_Handle_LoadError(t *testing.T) {
	ctx := t.Context()
	repo := new(MockParcelRecordRepository)
	uow := new(MockRecordUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRecordRepository").Return(repo).Once(),
		repo.On("LoadAll", ctx).Return(nil, errors.New("read error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRecordUoWFactory)
	factory.On("Create").Return(uow).Once()

	engine := newEngine(t)
	intake(t, engine, "KEEP", "Multan", 4, 1)

	h := commands.NewLoadSnapshotCommandHandler(engine, factory)
	_, err := h.Handle(ctx, commands.NewLoadSnapshotCommand())
	require.Error(t, err)

	_, err = engine.Lookup("KEEP")
	require.NoError(t, err)
	uow.AssertExpectations(t)
}
