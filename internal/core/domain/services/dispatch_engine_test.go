package services_test

import (
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/network"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/rider"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatchEngine(t *testing.T) {
	riders, err := rider.NewPool("Solo")
	require.NoError(t, err)

	t.Run("should require graph and riders", func(t *testing.T) {
		_, err := services.NewDispatchEngine(nil, riders)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = services.NewDispatchEngine(smallNetwork(t), nil)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a hub outside the network", func(t *testing.T) {
		_, err := services.NewDispatchEngine(smallNetwork(t), riders, services.WithHub("Atlantis"))

		assert.ErrorIs(t, err, network.ErrCityNotFound)
	})

	t.Run("should reject an invalid policy", func(t *testing.T) {
		policy := services.DefaultLifecyclePolicy()
		policy.MaxAttempts = 0

		_, err := services.NewDispatchEngine(smallNetwork(t), riders, services.WithPolicy(policy))

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestDispatchEngine_Intake(t *testing.T) {
	clock := &testClock{now: t0}

	t.Run("should store, queue and record the parcel", func(t *testing.T) {
		// Given
		engine := newEngine(t, constRandom(5), clock)

		// When
		v, err := engine.Intake("P1", "A", 3.0, 1)

		// Then
		require.NoError(t, err)
		assert.Equal(t, parcel.Warehouse, v.Status)
		assert.Equal(t, "Z1", v.Zone)
		assert.Equal(t, []string{"Pickup Request Created", "Arrived at Warehouse"}, descriptions(v))
		assert.Equal(t, "Central Hub", v.History[1].Location)
		assert.Equal(t, t0, v.LastUpdateTime)
		assert.Equal(t, services.EngineStats{Parcels: 1, Queued: 1, RidersAvailable: 4, UndoDepth: 1}, engine.Stats())
	})

	t.Run("should find every unique intake unchanged", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		destinations := []string{"A", "B", "C", "H"}
		for i := range 40 {
			_, err := engine.Intake(fmt.Sprintf("P%d", i), destinations[i%4], float64(i)+0.5, parcel.Priority(1+i%3))
			require.NoError(t, err)
		}

		for i := range 40 {
			v, err := engine.Lookup(fmt.Sprintf("P%d", i))
			require.NoError(t, err)
			assert.Equal(t, destinations[i%4], v.Destination)
			assert.InDelta(t, float64(i)+0.5, v.Weight, 1e-9)
			assert.Equal(t, parcel.Priority(1+i%3), v.Priority)
		}
	})

	t.Run("should reject duplicates without side effects", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)
		before := engine.Stats()

		_, err = engine.Intake("P1", "B", 9.0, 2)

		assert.ErrorIs(t, err, services.ErrDuplicateTrackingID)
		assert.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
		assert.Equal(t, before, engine.Stats())
		v, _ := engine.Lookup("P1")
		assert.Equal(t, "A", v.Destination)
	})

	t.Run("should reject unknown destinations and bad input", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)

		_, err := engine.Intake("P1", "Atlantis", 3.0, 1)
		assert.ErrorIs(t, err, services.ErrUnknownDestination)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = engine.Intake("P1", "A", 0, 1)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = engine.Intake("P1", "A", 1, 4)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = engine.Intake("", "A", 1, 1)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		assert.Zero(t, engine.Stats().Parcels)
	})

	t.Run("should fail when the store is full", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock, services.WithStoreCapacity(0, 1))
		_, err := engine.Intake("P1", "A", 1, 1)
		require.NoError(t, err)

		_, err = engine.Intake("P2", "A", 1, 1)

		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Equal(t, 1, engine.Stats().Queued)
	})
}

func TestDispatchEngine_DispatchNext(t *testing.T) {
	clock := &testClock{now: t0}

	t.Run("should dispatch the higher score first", func(t *testing.T) {
		// Given P1 scores 1003 and P2 scores 2025
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)
		_, err = engine.Intake("P2", "A", 25.0, 2)
		require.NoError(t, err)

		// When
		result, err := engine.DispatchNext(nil)

		// Then
		require.NoError(t, err)
		assert.Equal(t, "P2", result.Parcel.ID)
		assert.Equal(t, parcel.Loading, result.Parcel.Status)

		next, err := engine.DispatchNext(nil)
		require.NoError(t, err)
		assert.Equal(t, "P1", next.Parcel.ID)
	})

	t.Run("should dispatch equal scores in intake order", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		for _, id := range []string{"X1", "X2", "X3"} {
			_, err := engine.Intake(id, "B", 7.2, 2)
			require.NoError(t, err)
		}

		var order []string
		for range 3 {
			result, err := engine.DispatchNext(nil)
			require.NoError(t, err)
			order = append(order, result.Parcel.ID)
		}

		assert.Equal(t, []string{"X1", "X2", "X3"}, order)
	})

	t.Run("should stamp rider, route and timing", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)

		result, err := engine.DispatchNext(nil)

		require.NoError(t, err)
		assert.Equal(t, "InamUllah (Light Load)", result.Rider)
		assert.Equal(t, result.Rider, result.Parcel.AssignedRider)
		require.Len(t, result.Candidates, 2)
		assert.Equal(t, 0, result.Recommended)
		assert.Equal(t, 0, result.Selected)
		assert.Equal(t, []string{"H", "A"}, result.RouteNames)
		assert.Equal(t, 10, result.Route.Distance)
		assert.Equal(t, 20*time.Second, result.TravelTime)
		assert.Equal(t, t0, result.Parcel.DispatchTime)
		assert.Equal(t, t0.Add(20*time.Second), result.Parcel.ArrivalTime)
		assert.Nil(t, result.Blockage)
		assert.False(t, result.Rerouted)
		assert.Equal(t, "Loading onto Truck", result.Parcel.History[len(result.Parcel.History)-1].Description)
		assert.Equal(t, services.EngineStats{Parcels: 1, Shipments: 1, RidersAvailable: 4, UndoDepth: 2}, engine.Stats())
	})

	t.Run("should honour the operator's route choice", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)

		var offered []network.Path
		result, err := engine.DispatchNext(func(candidates []network.Path, recommended int) int {
			offered = candidates
			assert.Equal(t, 0, recommended)
			return 1
		})

		require.NoError(t, err)
		assert.Len(t, offered, 2)
		assert.Equal(t, 1, result.Selected)
		assert.Equal(t, []string{"H", "B", "A"}, result.RouteNames)
		assert.Equal(t, 12, result.Route.Distance)
	})

	t.Run("should fall back to the shortest path on an invalid choice", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)

		result, err := engine.DispatchNext(services.ChooseRoute(7))

		require.NoError(t, err)
		assert.Equal(t, 0, result.Selected)
		assert.Equal(t, 10, result.Route.Distance)
	})

	t.Run("should reroute after a live blockage", func(t *testing.T) {
		// Rolls: blockage fires, city H, its first road (H-A), travel 5 s jitter.
		engine := newEngine(t, &scriptedRandom{rolls: []int{0, 0, 0, 5}}, clock)
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)

		result, err := engine.DispatchNext(nil)

		require.NoError(t, err)
		require.NotNil(t, result.Blockage)
		assert.Equal(t, network.Blockage{From: 0, To: 1, Distance: 10}, *result.Blockage)
		assert.True(t, result.Rerouted)
		assert.Equal(t, []string{"H", "B", "A"}, result.RouteNames)
		assert.Equal(t, 20*time.Second, result.TravelTime)

		blocked := 0
		for _, c := range engine.Network().Cities {
			for _, r := range c.Roads {
				if r.Blocked {
					blocked++
				}
			}
		}
		assert.Equal(t, 2, blocked)
	})

	t.Run("should hold a parcel when the blockage leaves no detour", func(t *testing.T) {
		// Given a hub joined to its only destination by a single road
		g, err := network.Build(network.Definition{
			Hub:    "H",
			Cities: []network.CityDefinition{{Name: "H", Zone: "Z0"}, {Name: "A", Zone: "Z1"}},
			Roads:  []network.RoadDefinition{{From: "H", To: "A", Distance: 10}},
		})
		require.NoError(t, err)
		riders, err := rider.NewPool("Solo")
		require.NoError(t, err)
		engine, err := services.NewDispatchEngine(g, riders,
			services.WithRandom(&scriptedRandom{rolls: []int{0, 0, 0, 5}}),
			services.WithClock(clock.Now),
		)
		require.NoError(t, err)
		_, err = engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)

		// When the dispatch closes that road
		result, err := engine.DispatchNext(nil)

		// Then the parcel leaves on its route and the hold is on record
		require.NoError(t, err)
		require.NotNil(t, result.Blockage)
		assert.False(t, result.Rerouted)
		assert.True(t, result.Stranded)
		assert.Equal(t, []string{"H", "A"}, result.RouteNames)
		assert.Equal(t, parcel.Loading, result.Parcel.Status)
		assert.Equal(t, []string{"Pickup Request Created", "Arrived at Warehouse", "Loading onto Truck", "Held: road H-A closed"},
			descriptions(result.Parcel))

		// And the next parcel has no route until the road reopens
		_, err = engine.Intake("P2", "A", 1.0, 1)
		require.NoError(t, err)
		_, err = engine.DispatchNext(nil)
		require.ErrorIs(t, err, services.ErrNoRoute)

		assert.Equal(t, [][2]string{{"H", "A"}}, engine.ReopenRoads())
		assert.Empty(t, engine.ReopenRoads())
		next, err := engine.DispatchNext(nil)
		require.NoError(t, err)
		assert.Equal(t, "P2", next.Parcel.ID)
	})

	t.Run("should fail cleanly when the queue is empty", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)

		_, err := engine.DispatchNext(nil)

		assert.ErrorIs(t, err, services.ErrQueueEmpty)
		assert.ErrorIs(t, err, errs.ErrResourceUnavailable)
	})

	t.Run("should fail cleanly without riders", func(t *testing.T) {
		riders, err := rider.NewPool()
		require.NoError(t, err)
		engine, err := services.NewDispatchEngine(smallNetwork(t), riders, services.WithRandom(constRandom(5)))
		require.NoError(t, err)
		_, err = engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)

		_, err = engine.DispatchNext(nil)

		assert.ErrorIs(t, err, rider.ErrNoRiderAvailable)
		v, _ := engine.Lookup("P1")
		assert.Equal(t, parcel.Warehouse, v.Status)
		assert.Equal(t, 1, engine.Stats().Queued)
	})

	t.Run("should leave everything in place when no route exists", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("P1", "C", 3.0, 1)
		require.NoError(t, err)
		before := engine.Stats()

		_, err = engine.DispatchNext(nil)

		assert.ErrorIs(t, err, services.ErrNoRoute)
		assert.ErrorIs(t, err, errs.ErrResourceUnavailable)
		assert.Equal(t, before, engine.Stats())
		v, _ := engine.Lookup("P1")
		assert.Equal(t, parcel.Warehouse, v.Status)
		assert.Empty(t, v.AssignedRider)
	})

	t.Run("should rotate riders", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		for _, id := range []string{"P1", "P2"} {
			_, err := engine.Intake(id, "A", 1, 1)
			require.NoError(t, err)
		}

		first, err := engine.DispatchNext(nil)
		require.NoError(t, err)
		second, err := engine.DispatchNext(nil)
		require.NoError(t, err)

		assert.Equal(t, "InamUllah (Light Load)", first.Rider)
		assert.Equal(t, "Haris Waheed (Heavy Load)", second.Rider)
	})
}

func TestDispatchEngine_Tick(t *testing.T) {
	t.Run("should carry a shipment to delivery", func(t *testing.T) {
		clock := &testClock{now: t0}
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)
		_, err = engine.DispatchNext(nil)
		require.NoError(t, err)

		assert.Empty(t, engine.Tick(t0))
		require.Len(t, engine.Tick(at(5)), 1)
		assert.Empty(t, engine.Tick(at(5)))
		require.Len(t, engine.Tick(at(20)), 1)
		require.Len(t, engine.Tick(at(21)), 1)

		v, err := engine.Lookup("P1")
		require.NoError(t, err)
		assert.Equal(t, parcel.Delivered, v.Status)
		assert.Equal(t, []string{
			"Pickup Request Created",
			"Arrived at Warehouse",
			"Loading onto Truck",
			"Vehicle Departed",
			"Arrived at Destination Hub",
			"Handed to Recipient",
		}, descriptions(v))
		assert.Equal(t, at(21), v.LastUpdateTime)
	})

	t.Run("should report in-flight shipments with progress", func(t *testing.T) {
		clock := &testClock{now: t0}
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)
		_, err = engine.DispatchNext(nil)
		require.NoError(t, err)

		loading := engine.ActiveShipments()
		require.Len(t, loading, 1)
		assert.Equal(t, 0, loading[0].Progress)

		engine.Tick(at(5))
		clock.Set(at(10))
		moving := engine.ActiveShipments()
		require.Len(t, moving, 1)
		assert.Equal(t, parcel.InTransit, moving[0].Parcel.Status)
		assert.Equal(t, 50, moving[0].Progress)

		engine.Tick(at(20))
		assert.Empty(t, engine.ActiveShipments())
	})
}

func TestDispatchEngine_Undo(t *testing.T) {
	clock := &testClock{now: t0}

	t.Run("should report an empty history", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)

		_, err := engine.Undo()

		assert.ErrorIs(t, err, services.ErrNothingToUndo)
	})

	t.Run("should cancel an undone intake and drop it from the queue", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)

		outcome, err := engine.Undo()

		require.NoError(t, err)
		assert.Equal(t, services.UndoOutcome{Action: services.ActionAdd, ParcelID: "P1", Status: parcel.Cancelled}, outcome)
		v, _ := engine.Lookup("P1")
		assert.Equal(t, "Undo: Creation Reverted", v.History[len(v.History)-1].Description)
		assert.Equal(t, "N/A", v.History[len(v.History)-1].Location)
		_, err = engine.DispatchNext(nil)
		assert.ErrorIs(t, err, services.ErrQueueEmpty)
	})

	t.Run("should pull an undone dispatch back to the warehouse", func(t *testing.T) {
		// Given
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)
		_, err = engine.DispatchNext(nil)
		require.NoError(t, err)
		engine.Tick(at(5))

		// When
		outcome, err := engine.Undo()

		// Then
		require.NoError(t, err)
		assert.Equal(t, services.ActionDispatch, outcome.Action)
		v, _ := engine.Lookup("P1")
		assert.Equal(t, parcel.Warehouse, v.Status)
		assert.True(t, v.ArrivalTime.IsZero())
		assert.Equal(t, "Undo: Dispatch Reverted", v.History[len(v.History)-1].Description)
		assert.Equal(t, 1, engine.Stats().Queued)

		// And the parcel can ship again without being swept twice
		clock.Set(at(6))
		_, err = engine.DispatchNext(nil)
		require.NoError(t, err)
		assert.Equal(t, 1, engine.Stats().Shipments)
		require.Len(t, engine.Tick(at(11)), 1)
	})

	t.Run("should refuse to undo a finished dispatch and consume the entry", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), &testClock{now: t0})
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)
		_, err = engine.DispatchNext(nil)
		require.NoError(t, err)
		engine.Tick(at(5))
		engine.Tick(at(20))
		engine.Tick(at(21))

		_, err = engine.Undo()

		assert.ErrorIs(t, err, errs.ErrInvariantViolation)
		assert.Equal(t, 1, engine.Stats().UndoDepth)
		v, _ := engine.Lookup("P1")
		assert.Equal(t, parcel.Delivered, v.Status)
	})
}

func TestDispatchEngine_Cancel(t *testing.T) {
	clock := &testClock{now: t0}

	t.Run("should cancel a warehouse parcel", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)

		v, err := engine.Cancel("P1")

		require.NoError(t, err)
		assert.Equal(t, parcel.Cancelled, v.Status)
		assert.Equal(t, "Cancelled by Admin", v.History[len(v.History)-1].Description)
		assert.Zero(t, engine.Stats().Queued)
	})

	t.Run("should refuse to cancel a loading parcel", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)
		_, err = engine.DispatchNext(nil)
		require.NoError(t, err)

		_, err = engine.Cancel("P1")

		assert.ErrorIs(t, err, errs.ErrInvariantViolation)
		v, _ := engine.Lookup("P1")
		assert.Equal(t, parcel.Loading, v.Status)
	})

	t.Run("should report unknown parcels", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)

		_, err := engine.Cancel("nope")
		assert.ErrorIs(t, err, services.ErrParcelNotFound)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)

		_, err = engine.Lookup("nope")
		assert.ErrorIs(t, err, services.ErrParcelNotFound)
	})
}

func TestDispatchEngine_SnapshotRestore(t *testing.T) {
	clock := &testClock{now: t0}

	t.Run("should snapshot in intake order", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("P1", "A", 3.0, 1)
		require.NoError(t, err)
		_, err = engine.Intake("P2", "B", 25.0, 2)
		require.NoError(t, err)
		_, err = engine.DispatchNext(nil)
		require.NoError(t, err)

		records := engine.Snapshot()

		assert.Equal(t, []parcel.Record{
			{ID: "P1", Destination: "A", Weight: 3.0, Priority: 1, Status: parcel.Warehouse, Zone: "Z1"},
			{ID: "P2", Destination: "B", Weight: 25.0, Priority: 2, Status: parcel.Loading, Zone: "Z2"},
		}, records)
	})

	t.Run("should re-enroll restored parcels", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("old", "A", 1, 1)
		require.NoError(t, err)

		restored := engine.Restore([]parcel.Record{
			{ID: "W", Destination: "A", Weight: 3, Priority: 1, Status: parcel.Warehouse, Zone: "Z1"},
			{ID: "T", Destination: "B", Weight: 4, Priority: 2, Status: parcel.InTransit, Zone: "Z2"},
			{ID: "D", Destination: "B", Weight: 5, Priority: 3, Status: parcel.Delivered, Zone: "Z2"},
		})

		assert.Equal(t, services.RestoreResult{Restored: 3}, restored)
		assert.Equal(t, services.EngineStats{Parcels: 3, Queued: 1, Shipments: 1, RidersAvailable: 4}, engine.Stats())
		_, err = engine.Lookup("old")
		assert.ErrorIs(t, err, services.ErrParcelNotFound)

		result, err := engine.DispatchNext(nil)
		require.NoError(t, err)
		assert.Equal(t, "W", result.Parcel.ID)

		// The restored in-transit parcel has no arrival time and arrives on the next sweep.
		moved := engine.Tick(at(1))
		require.Len(t, moved, 1)
		assert.Equal(t, "T", moved[0].ParcelID)
		assert.Equal(t, parcel.DeliveryAttempt, moved[0].To)
	})

	t.Run("should skip bad records and keep the valid ones", func(t *testing.T) {
		engine := newEngine(t, constRandom(5), clock)
		_, err := engine.Intake("old", "A", 1, 1)
		require.NoError(t, err)

		restored := engine.Restore([]parcel.Record{
			{ID: "X", Destination: "Atlantis", Weight: 1, Priority: 1, Status: parcel.Warehouse},
			{ID: "Y", Destination: "A", Weight: 1, Priority: 1, Status: 42},
			{ID: "Z", Destination: "A", Weight: 1, Priority: 1, Status: parcel.Warehouse},
			{ID: "Z", Destination: "B", Weight: 2, Priority: 2, Status: parcel.Warehouse},
			{ID: "INF", Destination: "A", Weight: math.Inf(1), Priority: 1, Status: parcel.Warehouse},
			{ID: "T", Destination: "B", Weight: 4, Priority: 2, Status: parcel.InTransit, Zone: "Z2"},
		})

		assert.Equal(t, 2, restored.Restored)
		assert.Equal(t, 4, restored.Skipped)
		require.Error(t, restored.Rejected)
		assert.ErrorIs(t, restored.Rejected, services.ErrUnknownDestination)
		assert.ErrorIs(t, restored.Rejected, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, restored.Rejected, services.ErrDuplicateTrackingID)

		v, err := engine.Lookup("Z")
		require.NoError(t, err)
		assert.Equal(t, "A", v.Destination, "the first record with an ID wins")
		_, err = engine.Lookup("T")
		require.NoError(t, err)
		_, err = engine.Lookup("old")
		require.ErrorIs(t, err, services.ErrParcelNotFound)
		assert.Equal(t, services.EngineStats{Parcels: 2, Queued: 1, Shipments: 1, RidersAvailable: 4}, engine.Stats())

		assert.Len(t, engine.Snapshot(), 2)
	})
}

// countingRecorder needs no lock: the engine calls it under its own.
type countingRecorder struct {
	accepted    int
	dispatched  int
	failures    []string
	blocked     int
	transitions int
	undos       int
	depth       int
}

func (r *countingRecorder) ParcelAccepted(string)                      { r.accepted++ }
func (r *countingRecorder) ParcelDispatched(int, bool)                 { r.dispatched++ }
func (r *countingRecorder) DispatchFailed(reason string)               { r.failures = append(r.failures, reason) }
func (r *countingRecorder) RoadBlocked()                               { r.blocked++ }
func (r *countingRecorder) StatusChanged(parcel.Status, parcel.Status) { r.transitions++ }
func (r *countingRecorder) UndoApplied(services.UndoAction)            { r.undos++ }
func (r *countingRecorder) QueueDepth(depth int)                       { r.depth = depth }

func TestDispatchEngine_Recorder(t *testing.T) {
	recorder := &countingRecorder{}
	engine := newEngine(t, constRandom(5), &testClock{now: t0}, services.WithRecorder(recorder))

	_, err := engine.Intake("P1", "A", 3.0, 1)
	require.NoError(t, err)
	_, err = engine.Intake("P2", "C", 3.0, 1)
	require.NoError(t, err)
	_, err = engine.DispatchNext(nil)
	require.NoError(t, err)
	_, err = engine.DispatchNext(nil)
	require.ErrorIs(t, err, services.ErrNoRoute)
	engine.Tick(at(5))
	_, err = engine.Undo()
	require.NoError(t, err)

	assert.Equal(t, 2, recorder.accepted)
	assert.Equal(t, 1, recorder.dispatched)
	assert.Equal(t, []string{"no_route"}, recorder.failures)
	assert.Equal(t, 3, recorder.transitions)
	assert.Equal(t, 1, recorder.undos)
	assert.Equal(t, 2, recorder.depth)
}

func TestDispatchEngine_ConcurrentUse(t *testing.T) {
	clock := &testClock{now: t0}
	engine := newEngine(t, constRandom(5), clock)

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 25 {
				_, _ = engine.Intake(fmt.Sprintf("W%d-%d", w, i), "A", 2, 1)
				_, _ = engine.DispatchNext(nil)
				engine.Tick(at(w*100 + i))
				_ = engine.List()
				_ = engine.ActiveShipments()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, engine.Stats().Parcels)
}
