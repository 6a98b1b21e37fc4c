package queries_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/network"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/rider"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

// steadyRandom answers every draw with value mod n. 9 never blocks a road and
// gives a 24 s travel time.
type steadyRandom int

func (s steadyRandom) IntN(n int) int { return int(s) % n }

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func newEngine(t *testing.T, clock *testClock) *services.DispatchEngine {
	t.Helper()

	graph, err := network.Build(network.DefaultDefinition())
	require.NoError(t, err)
	riders, err := rider.NewPool(rider.DefaultNames()...)
	require.NoError(t, err)

	engine, err := services.NewDispatchEngine(graph, riders,
		services.WithRandom(steadyRandom(9)),
		services.WithClock(clock.Now),
	)
	require.NoError(t, err)
	return engine
}

func intake(t *testing.T, engine *services.DispatchEngine, id, destination string, weight float64, priority int) {
	t.Helper()
	_, err := engine.Intake(id, destination, weight, parcel.Priority(priority))
	require.NoError(t, err)
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
