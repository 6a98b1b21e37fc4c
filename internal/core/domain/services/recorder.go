package services

import "parceltrack/internal/core/domain/model/parcel"

// Recorder receives engine events for metrics. Calls happen while the engine
// lock is held, so implementations must not call back into the engine.
type Recorder interface {
	ParcelAccepted(zone string)
	ParcelDispatched(candidates int, rerouted bool)
	DispatchFailed(reason string)
	RoadBlocked()
	StatusChanged(from, to parcel.Status)
	UndoApplied(action UndoAction)
	QueueDepth(depth int)
}

type nopRecorder struct{}

func (nopRecorder) ParcelAccepted(string)                      {}
func (nopRecorder) ParcelDispatched(int, bool)                 {}
func (nopRecorder) DispatchFailed(string)                      {}
func (nopRecorder) RoadBlocked()                               {}
func (nopRecorder) StatusChanged(parcel.Status, parcel.Status) {}
func (nopRecorder) UndoApplied(UndoAction)                     {}
func (nopRecorder) QueueDepth(int)                             {}
