package services

import (
	"log/slog"

	"parceltrack/internal/core/domain/model/kernel"
)

// EngineOption configures a DispatchEngine.
type EngineOption func(*DispatchEngine)

// WithRandom sets the source of every randomized decision. Use a seeded source
// for reproducible runs.
func WithRandom(rng kernel.Random) EngineOption {
	return func(e *DispatchEngine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithClock sets the time source used to stamp intake, dispatch, undo and cancel.
func WithClock(clock kernel.Clock) EngineOption {
	return func(e *DispatchEngine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithLogger sets the logger; the engine adds component=dispatch_engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *DispatchEngine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder Recorder) EngineOption {
	return func(e *DispatchEngine) {
		if recorder != nil {
			e.recorder = recorder
		}
	}
}

// WithHub overrides the graph's hub as the origin of every route.
func WithHub(name string) EngineOption {
	return func(e *DispatchEngine) {
		if name != "" {
			e.hub = name
		}
	}
}

// WithPolicy replaces DefaultLifecyclePolicy.
func WithPolicy(policy LifecyclePolicy) EngineOption {
	return func(e *DispatchEngine) {
		e.policy = policy
	}
}

// WithStoreCapacity sizes the parcel store. A positive maxEntries makes intake
// fail with ErrStoreCapacityExceeded once that many parcels are stored.
func WithStoreCapacity(initial, maxEntries int) EngineOption {
	return func(e *DispatchEngine) {
		e.storeInitial = initial
		e.storeMax = maxEntries
	}
}
