// Package services provides the domain services of the parcel tracking engine.
//
// The package includes:
//   - ParcelStore: the owning, hash-addressed collection of parcels
//   - DispatchScheduler: the max-heap of warehouse parcels keyed by priority score
//   - ShipmentLedger: the dispatch-ordered list of shipments and its lifecycle sweep
//   - UndoLedger: the stack of reversible intake and dispatch actions
//   - DispatchEngine: the single entry point that ties them to the route graph and rider pool
//
// Only ParcelStore holds parcels; the scheduler and both ledgers refer to them
// by tracking ID.
package services
