package services_test

import (
	"sync"
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/network"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/rider"
	"parceltrack/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

// constRandom answers every draw with value mod n.
type constRandom int

func (c constRandom) IntN(n int) int { return int(c) % n }

// funcRandom delegates every draw.
type funcRandom func(n int) int

func (f funcRandom) IntN(n int) int { return f(n) }

// scriptedRandom replays rolls in order and then repeats the last one.
type scriptedRandom struct {
	rolls []int
	next  int
}

func (s *scriptedRandom) IntN(n int) int {
	i := s.next
	if i >= len(s.rolls) {
		i = len(s.rolls) - 1
	}
	s.next++
	return s.rolls[i] % n
}

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

// smallNetwork: H-A 10, H-B 6, B-A 6 and an isolated city C.
func smallNetwork(t *testing.T) *network.Graph {
	t.Helper()
	g, err := network.Build(network.Definition{
		Hub: "H",
		Cities: []network.CityDefinition{
			{Name: "H", Zone: "Z0"},
			{Name: "A", Zone: "Z1"},
			{Name: "B", Zone: "Z2"},
			{Name: "C", Zone: "Z3"},
		},
		Roads: []network.RoadDefinition{
			{From: "H", To: "A", Distance: 10},
			{From: "H", To: "B", Distance: 6},
			{From: "B", To: "A", Distance: 6},
		},
	})
	require.NoError(t, err)
	return g
}

func newEngine(t *testing.T, rng kernel.Random, clock *testClock, opts ...services.EngineOption) *services.DispatchEngine {
	t.Helper()
	riders, err := rider.NewPool(rider.DefaultNames()...)
	require.NoError(t, err)

	all := append([]services.EngineOption{
		services.WithRandom(rng),
		services.WithClock(clock.Now),
	}, opts...)
	engine, err := services.NewDispatchEngine(smallNetwork(t), riders, all...)
	require.NoError(t, err)
	return engine
}

func newParcel(t *testing.T, id string, weight float64, priority parcel.Priority) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(id, "A", weight, priority, "Z1", t0)
	require.NoError(t, err)
	return p
}

func descriptions(v parcel.View) []string {
	out := make([]string, len(v.History))
	for i, e := range v.History {
		out[i] = e.Description
	}
	return out
}
