package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/network"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/rider"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrQueueEmpty is returned by DispatchNext when no parcel awaits dispatch.
	ErrQueueEmpty = errs.NewResourceUnavailableError("dispatch queue")
	// ErrNoRoute is returned by DispatchNext when the destination is unreachable from the hub.
	ErrNoRoute = errs.NewResourceUnavailableError("route")
	// ErrNothingToUndo is returned by Undo when no action is recorded.
	ErrNothingToUndo = errs.NewResourceUnavailableError("undo history")
	// ErrUnknownDestination is returned by Intake for cities outside the network.
	ErrUnknownDestination = errors.New("unknown destination")
	// ErrParcelNotFound is returned for tracking IDs that are not stored.
	ErrParcelNotFound = errors.New("parcel not found")
)

// RouteSelector picks one of the candidate paths. It receives the index of the
// shortest candidate as a recommendation. Out-of-range answers fall back to the
// recommendation.
type RouteSelector func(candidates []network.Path, recommended int) int

// ChooseRoute returns a selector that always answers index.
func ChooseRoute(index int) RouteSelector {
	return func([]network.Path, int) int { return index }
}

// DispatchResult describes a completed dispatch.
type DispatchResult struct {
	Parcel     parcel.View
	Rider      string
	Candidates []network.Path
	// CandidateNames holds the city names of each candidate, in the same order.
	CandidateNames [][]string
	Recommended    int
	Selected       int
	Route          network.Path
	RouteNames     []string
	TravelTime     time.Duration
	Blockage       *network.Blockage
	// BlockedRoad names both ends of Blockage when one occurred.
	BlockedRoad []string
	Rerouted    bool
	// Stranded is set when the blockage closed every path to the destination.
	// The parcel keeps its selected route and waits for the road to reopen.
	Stranded bool
}

// UndoOutcome describes a reverted action.
type UndoOutcome struct {
	Action   UndoAction
	ParcelID string
	Status   parcel.Status
}

// ActiveShipment is a parcel on the live transit monitor.
type ActiveShipment struct {
	Parcel   parcel.View
	Progress int
}

// EngineStats is a point-in-time summary of the engine's collections.
type EngineStats struct {
	Parcels         int
	Queued          int
	Shipments       int
	RidersAvailable int
	UndoDepth       int
}

// DispatchEngine orchestrates intake, dispatch, lifecycle ticks and undo over
// the parcel store, dispatch scheduler, shipment ledger, undo ledger, rider pool
// and route graph.
//
// Business rules:
//   - Intake validates before any mutation
//   - DispatchNext only ships parcels that were in Warehouse
//   - Failed dispatches leave every collection as it was
//   - Routes always start at the hub
//
// The collections have no synchronization of their own; every exported method
// holds one engine-wide lock.
//
// Example usage:
//
//	engine, err := services.NewDispatchEngine(graph, riders, services.WithRandom(kernel.NewSeededRandom(1)))
//	if err != nil {
//	    return err
//	}
//	_, err = engine.Intake("TRK-1", "Karachi", 3.5, 1)
//	result, err := engine.DispatchNext(nil)
//	transitions := engine.Tick(time.Now())
type DispatchEngine struct {
	mu sync.Mutex

	graph     *network.Graph
	riders    *rider.Pool
	store     *ParcelStore
	scheduler *DispatchScheduler
	ledger    *ShipmentLedger
	undo      *UndoLedger

	rng      kernel.Random
	clock    kernel.Clock
	logger   *slog.Logger
	recorder Recorder
	hub      string
	policy   LifecyclePolicy

	storeInitial int
	storeMax     int
}

// NewDispatchEngine creates an engine over graph and riders.
//
// Returns an error when graph or riders is missing, the hub is not a city of
// the graph or the lifecycle policy is invalid.
func NewDispatchEngine(graph *network.Graph, riders *rider.Pool, opts ...EngineOption) (*DispatchEngine, error) {
	if graph == nil {
		return nil, errs.NewValueIsRequiredError("graph")
	}
	if riders == nil {
		return nil, errs.NewValueIsRequiredError("riders")
	}

	e := &DispatchEngine{
		graph:     graph,
		riders:    riders,
		scheduler: NewDispatchScheduler(),
		ledger:    NewShipmentLedger(),
		undo:      NewUndoLedger(),
		rng:       kernel.NewSeededRandom(uint64(time.Now().UnixNano())), //nolint:gosec // seed only
		clock:     kernel.SystemClock,
		logger:    slog.Default(),
		recorder:  nopRecorder{},
		hub:       graph.Hub(),
		policy:    DefaultLifecyclePolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.hub == "" {
		return nil, errs.NewValueIsRequiredError("hub")
	}
	if _, ok := graph.CityIndex(e.hub); !ok {
		return nil, fmt.Errorf("%w: %w", network.ErrCityNotFound, errs.NewObjectNotFoundError("hub", e.hub))
	}
	if err := e.policy.Validate(); err != nil {
		return nil, fmt.Errorf("lifecycle policy: %w", err)
	}

	e.logger = e.logger.With("component", "dispatch_engine")
	e.store = NewParcelStore(e.storeInitial, e.storeMax)
	return e, nil
}

// Intake registers a pickup request and queues the parcel for dispatch.
//
// Returns:
//   - ErrUnknownDestination (also errs.ErrValueIsInvalid) for cities outside the network
//   - parcel validation errors for bad id, weight or priority
//   - ErrDuplicateTrackingID when the ID is taken
//   - ErrStoreCapacityExceeded when the store is full
func (e *DispatchEngine) Intake(id, destination string, weight float64, priority parcel.Priority) (parcel.View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	destination = strings.TrimSpace(destination)
	if _, ok := e.graph.CityIndex(destination); !ok {
		return parcel.View{}, fmt.Errorf("%w: %w", ErrUnknownDestination, errs.NewValueIsInvalidErrorWithCause(
			"destination", fmt.Errorf("%q is not a city of the network", destination)))
	}

	now := e.clock()
	p, err := parcel.NewParcel(id, destination, weight, priority, e.graph.Zone(destination), now)
	if err != nil {
		return parcel.View{}, err
	}
	if err = e.store.Insert(p); err != nil {
		return parcel.View{}, err
	}

	if err = p.UpdateStatus(parcel.Warehouse, "Arrived at Warehouse", "Central Hub", now); err != nil {
		return parcel.View{}, err
	}
	if err = e.scheduler.Insert(p.ID(), p.PriorityScore()); err != nil {
		return parcel.View{}, err
	}
	e.undo.Push(ActionAdd, p.ID())

	e.recorder.ParcelAccepted(p.Zone())
	e.recorder.QueueDepth(e.scheduler.Len())
	e.logger.Info("parcel accepted",
		"parcel_id", p.ID(),
		"destination", p.Destination(),
		"zone", p.Zone(),
		"category", p.WeightCategory(),
		"score", p.PriorityScore(),
	)
	return p.View(), nil
}

// DispatchNext ships the highest-scoring warehouse parcel from the hub.
//
// The selector chooses among the candidate paths; nil takes the shortest.
// With BlockageChance a random road is closed right after selection, and when
// any path remains the shipment is forced onto the new shortest one.
//
// Returns ErrQueueEmpty, rider.ErrNoRiderAvailable or ErrNoRoute without
// changing any state.
func (e *DispatchEngine) DispatchNext(selector RouteSelector) (DispatchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.scheduler.Peek()
	if !ok {
		e.recorder.DispatchFailed("queue_empty")
		return DispatchResult{}, ErrQueueEmpty
	}
	if e.riders.Len() == 0 {
		e.recorder.DispatchFailed("no_rider")
		return DispatchResult{}, rider.ErrNoRiderAvailable
	}

	p, ok := e.store.Lookup(id)
	if !ok {
		return DispatchResult{}, errs.NewInvariantViolationErrorWithCause("dispatch parcel", fmt.Errorf("queued parcel %q is not stored", id))
	}
	if err := p.Status().ValidateDispatch(); err != nil {
		return DispatchResult{}, err
	}

	start, _ := e.graph.CityIndex(e.hub)
	end, _ := e.graph.CityIndex(p.Destination())
	candidates := e.graph.FindPaths(start, end)
	if len(candidates) == 0 {
		e.recorder.DispatchFailed("no_route")
		e.logger.Warn("no route to destination", "parcel_id", id, "hub", e.hub, "destination", p.Destination())
		return DispatchResult{}, fmt.Errorf("%w: %s to %s", ErrNoRoute, e.hub, p.Destination())
	}

	result := DispatchResult{Candidates: candidates, Recommended: network.PickShortest(candidates)}
	result.Selected = result.Recommended
	if selector != nil {
		offered := make([]network.Path, len(candidates))
		copy(offered, candidates)
		if choice := selector(offered, result.Recommended); choice >= 0 && choice < len(candidates) {
			result.Selected = choice
		}
	}
	result.Route = candidates[result.Selected]

	if e.policy.BlockageChance.Roll(e.rng) {
		if blocked, closed := e.graph.BlockRandomRoad(e.rng); closed {
			result.Blockage = &blocked
			result.BlockedRoad = []string{e.cityName(blocked.From), e.cityName(blocked.To)}
			e.recorder.RoadBlocked()
			e.logger.Warn("live road blockage",
				"from", e.cityName(blocked.From),
				"to", e.cityName(blocked.To),
				"distance", blocked.Distance,
			)
			if rerouted := e.graph.FindPaths(start, end); len(rerouted) > 0 {
				result.Route = rerouted[network.PickShortest(rerouted)]
				result.Rerouted = true
				e.logger.Info("rerouted to new shortest path", "parcel_id", id, "distance", result.Route.Distance)
			} else {
				result.Stranded = true
				e.logger.Warn("no detour around blockage", "parcel_id", id, "destination", p.Destination())
			}
		}
	}

	now := e.clock()
	result.TravelTime = e.policy.TravelTime(e.rng)

	r, err := e.riders.Acquire()
	if err != nil {
		return DispatchResult{}, err
	}
	defer func() {
		if releaseErr := e.riders.Release(r); releaseErr != nil {
			e.logger.Error("failed to release rider", "rider", r.Name(), "error", releaseErr)
		}
	}()

	if err = p.AssignDispatch(r.Name(), now, now.Add(result.TravelTime)); err != nil {
		return DispatchResult{}, err
	}
	if err = p.UpdateStatus(parcel.Loading, "Loading onto Truck", "Bay 4", now); err != nil {
		return DispatchResult{}, err
	}
	if result.Stranded {
		held := fmt.Sprintf("Held: road %s closed", strings.Join(result.BlockedRoad, "-"))
		if err = p.UpdateStatus(parcel.Loading, held, "Bay 4", now); err != nil {
			return DispatchResult{}, err
		}
	}
	e.scheduler.Remove(id)
	e.ledger.Append(id)
	e.undo.Push(ActionDispatch, id)

	result.Parcel = p.View()
	result.Rider = r.Name()
	result.RouteNames = e.graph.Describe(result.Route)
	result.CandidateNames = make([][]string, len(candidates))
	for i, c := range candidates {
		result.CandidateNames[i] = e.graph.Describe(c)
	}

	e.recorder.ParcelDispatched(len(candidates), result.Rerouted)
	e.recorder.StatusChanged(parcel.Warehouse, parcel.Loading)
	e.recorder.QueueDepth(e.scheduler.Len())
	e.logger.Info("parcel dispatched",
		"parcel_id", id,
		"rider", r.Name(),
		"route", strings.Join(result.RouteNames, " -> "),
		"distance", result.Route.Distance,
		"eta", result.TravelTime,
	)
	return result, nil
}

// Tick runs one lifecycle sweep at now and returns the applied transitions.
// Calling it again with the same now changes nothing.
func (e *DispatchEngine) Tick(now time.Time) []Transition {
	e.mu.Lock()
	defer e.mu.Unlock()

	transitions := e.ledger.Sweep(now, e.store, e.rng, e.policy)
	for _, t := range transitions {
		e.recorder.StatusChanged(t.From, t.To)
		level := slog.LevelDebug
		if t.To.IsTerminal() {
			level = slog.LevelInfo
		}
		e.logger.Log(context.Background(), level, "parcel status changed",
			"parcel_id", t.ParcelID,
			"from", t.From.String(),
			"to", t.To.String(),
			"description", t.Description,
		)
	}
	return transitions
}

// Undo reverts the most recent intake or dispatch.
//
// Returns:
//   - ErrNothingToUndo when nothing is recorded
//   - errs.InvariantViolationError when the parcel has moved on so far that the
//     action can no longer be reverted; the entry is consumed
func (e *DispatchEngine) Undo() (UndoOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.undo.Pop()
	if !ok {
		return UndoOutcome{}, ErrNothingToUndo
	}

	p, ok := e.store.Lookup(entry.ParcelID)
	if !ok {
		return UndoOutcome{}, e.notFound(entry.ParcelID)
	}

	from := p.Status()
	now := e.clock()
	switch entry.Action {
	case ActionAdd:
		if !from.CanCancel() {
			return UndoOutcome{}, errs.NewInvariantViolationErrorWithCause(
				"undo intake", fmt.Errorf("parcel %s is already %s", p.ID(), from))
		}
		if err := p.UpdateStatus(parcel.Cancelled, "Undo: Creation Reverted", "N/A", now); err != nil {
			return UndoOutcome{}, err
		}
		e.scheduler.Remove(p.ID())

	case ActionDispatch:
		if err := from.ValidateRecall(); err != nil {
			return UndoOutcome{}, err
		}
		if err := p.UpdateStatus(parcel.Warehouse, "Undo: Dispatch Reverted", "Warehouse", now); err != nil {
			return UndoOutcome{}, err
		}
		p.ClearArrival()
		if err := e.scheduler.Insert(p.ID(), p.PriorityScore()); err != nil {
			return UndoOutcome{}, err
		}

	default:
		return UndoOutcome{}, errs.NewInvariantViolationErrorWithCause("undo", fmt.Errorf("unknown action %d", entry.Action))
	}

	e.recorder.UndoApplied(entry.Action)
	e.recorder.StatusChanged(from, p.Status())
	e.recorder.QueueDepth(e.scheduler.Len())
	e.logger.Info("action undone", "action", entry.Action.String(), "parcel_id", p.ID(), "status", p.Status().String())

	return UndoOutcome{Action: entry.Action, ParcelID: p.ID(), Status: p.Status()}, nil
}

// Cancel cancels a parcel that has not left the warehouse.
func (e *DispatchEngine) Cancel(id string) (parcel.View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.store.Lookup(id)
	if !ok {
		return parcel.View{}, e.notFound(id)
	}
	from := p.Status()
	if err := from.ValidateCancel(); err != nil {
		return parcel.View{}, err
	}
	if err := p.UpdateStatus(parcel.Cancelled, "Cancelled by Admin", "Warehouse", e.clock()); err != nil {
		return parcel.View{}, err
	}
	e.scheduler.Remove(id)

	e.recorder.StatusChanged(from, parcel.Cancelled)
	e.recorder.QueueDepth(e.scheduler.Len())
	e.logger.Info("parcel cancelled", "parcel_id", id)
	return p.View(), nil
}

// Lookup returns the parcel stored under id.
func (e *DispatchEngine) Lookup(id string) (parcel.View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.store.Lookup(id)
	if !ok {
		return parcel.View{}, e.notFound(id)
	}
	return p.View(), nil
}

// List returns every parcel in intake order.
func (e *DispatchEngine) List() []parcel.View {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]parcel.View, 0, e.store.Len())
	e.store.ForEach(func(p *parcel.Parcel) {
		out = append(out, p.View())
	})
	return out
}

// Network returns a read-only dump of the route graph, blockages included.
func (e *DispatchEngine) Network() network.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.graph.Snapshot()
	snap.Hub = e.hub
	return snap
}

// ActiveShipments lists parcels that are loading or on the road with their
// progress toward the expected arrival, in percent.
func (e *DispatchEngine) ActiveShipments() []ActiveShipment {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	views := e.ledger.Active(e.store)
	out := make([]ActiveShipment, len(views))
	for i, v := range views {
		out[i] = ActiveShipment{Parcel: v, Progress: progress(v, now)}
	}
	return out
}

// Stats summarizes the engine's collections.
func (e *DispatchEngine) Stats() EngineStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	return EngineStats{
		Parcels:         e.store.Len(),
		Queued:          e.scheduler.Len(),
		Shipments:       e.ledger.Len(),
		RidersAvailable: e.riders.Len(),
		UndoDepth:       e.undo.Len(),
	}
}

// Snapshot returns the persisted form of every parcel in intake order.
func (e *DispatchEngine) Snapshot() []parcel.Record {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]parcel.Record, 0, e.store.Len())
	e.store.ForEach(func(p *parcel.Parcel) {
		out = append(out, p.Record())
	})
	return out
}

// ReopenRoads clears every road blockage and returns the reopened roads as
// city name pairs.
func (e *DispatchEngine) ReopenRoads() [][2]string {
	e.mu.Lock()
	defer e.mu.Unlock()

	reopened := e.graph.ReopenRoads()
	names := make([][2]string, len(reopened))
	for i, b := range reopened {
		names[i] = [2]string{e.cityName(b.From), e.cityName(b.To)}
		e.logger.Info("road reopened", "from", names[i][0], "to", names[i][1])
	}
	return names
}

// RestoreResult reports the outcome of Restore. Rejected joins the reason of
// every skipped record and is nil when all records were restored.
type RestoreResult struct {
	Restored int
	Skipped  int
	Rejected error
}

// Restore replaces all parcels with records. Statuses are forced as persisted;
// Warehouse parcels are queued again and Loading through DeliveryAttempt parcels
// re-enter the shipment ledger. A record with an unknown destination, an
// invalid field or a duplicate tracking ID is skipped with a warning and the
// rest are kept. The undo history is cleared.
func (e *DispatchEngine) Restore(records []parcel.Record) RestoreResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	var (
		now       = e.clock()
		store     = NewParcelStore(max(e.storeInitial, 2*len(records)), e.storeMax)
		scheduler = NewDispatchScheduler()
		ledger    = NewShipmentLedger()
		rejected  []error
	)
	skip := func(i int, rec parcel.Record, err error) {
		err = fmt.Errorf("record %d: %w", i, err)
		rejected = append(rejected, err)
		e.logger.Warn("skipping parcel record", "index", i, "parcel_id", rec.ID, "error", err)
	}

	for i, rec := range records {
		if _, ok := e.graph.CityIndex(rec.Destination); !ok {
			skip(i, rec, fmt.Errorf("%w: %s", ErrUnknownDestination, rec.Destination))
			continue
		}
		p, err := parcel.RestoreParcel(rec, now)
		if err != nil {
			skip(i, rec, err)
			continue
		}
		if err = store.Insert(p); err != nil {
			skip(i, rec, err)
			continue
		}

		switch {
		case p.Status().IsAwaitingDispatch():
			if err = scheduler.Insert(p.ID(), p.PriorityScore()); err != nil {
				e.logger.Error("restored parcel not queued", "parcel_id", p.ID(), "error", err)
			}
		case p.Status().IsInPipeline():
			ledger.Append(p.ID())
		}
	}

	e.store = store
	e.scheduler = scheduler
	e.ledger = ledger
	e.undo = NewUndoLedger()

	e.recorder.QueueDepth(scheduler.Len())
	e.logger.Info("parcels restored",
		"parcels", store.Len(), "queued", scheduler.Len(), "in_transit", ledger.Len(), "skipped", len(rejected))

	return RestoreResult{
		Restored: store.Len(),
		Skipped:  len(rejected),
		Rejected: errors.Join(rejected...),
	}
}

func (e *DispatchEngine) notFound(id string) error {
	return fmt.Errorf("%w: %w", ErrParcelNotFound, errs.NewObjectNotFoundError("tracking id", id))
}

func (e *DispatchEngine) cityName(i int) string {
	if c, ok := e.graph.City(i); ok {
		return c.Name
	}
	return "?"
}

func progress(v parcel.View, now time.Time) int {
	if v.Status == parcel.Loading || v.ArrivalTime.IsZero() {
		return 0
	}
	total := v.ArrivalTime.Sub(v.DispatchTime)
	if total <= 0 || !now.Before(v.ArrivalTime) {
		return 100
	}
	done := now.Sub(v.DispatchTime)
	if done <= 0 {
		return 0
	}
	return int(done * 100 / total)
}
