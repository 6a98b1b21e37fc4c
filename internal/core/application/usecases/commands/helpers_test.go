package commands_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/network"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/rider"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

// steadyRandom answers every draw with value mod n. 9 never blocks a road,
// never loses a parcel and never delivers on the first attempt.
type steadyRandom int

func (s steadyRandom) IntN(n int) int { return int(s) % n }

func newEngine(t *testing.T) *services.DispatchEngine {
	t.Helper()

	graph, err := network.Build(network.DefaultDefinition())
	require.NoError(t, err)
	riders, err := rider.NewPool(rider.DefaultNames()...)
	require.NoError(t, err)

	engine, err := services.NewDispatchEngine(graph, riders,
		services.WithRandom(steadyRandom(9)),
		services.WithClock(kernel.FixedClock(t0)),
	)
	require.NoError(t, err)
	return engine
}

func intake(t *testing.T, engine *services.DispatchEngine, id, destination string, weight float64, priority int) {
	t.Helper()
	_, err := engine.Intake(id, destination, weight, parcel.Priority(priority))
	require.NoError(t, err)
}

type MockParcelRecordRepository struct{ mock.Mock }

func (m *MockParcelRecordRepository) ReplaceAll(ctx context.Context, records []parcel.Record) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockParcelRecordRepository) LoadAll(ctx context.Context) ([]parcel.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]parcel.Record), args.Error(1)
}

type MockRecordUoW struct{ mock.Mock }

func (m *MockRecordUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRecordUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRecordUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRecordUoW) ParcelRecordRepository() ports.ParcelRecordRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRecordRepository)
}

type MockRecordUoWFactory struct{ mock.Mock }

func (m *MockRecordUoWFactory) Create() commands.RecordUoW {
	args := m.Called()
	return args.Get(0).(commands.RecordUoW)
}

type MockTrackingCache struct{ mock.Mock }

func (m *MockTrackingCache) Put(ctx context.Context, summaries ...ports.TrackingSummary) error {
	args := m.Called(ctx, summaries)
	return args.Error(0)
}

func (m *MockTrackingCache) Get(ctx context.Context, trackingID string) (ports.TrackingSummary, error) {
	args := m.Called(ctx, trackingID)
	return args.Get(0).(ports.TrackingSummary), args.Error(1)
}
