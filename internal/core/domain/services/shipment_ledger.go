package services

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// Transition is one status change applied by a lifecycle sweep.
type Transition struct {
	ParcelID    string
	From        parcel.Status
	To          parcel.Status
	At          time.Time
	Description string
	Location    string
}

// ShipmentLedger lists dispatched parcels in dispatch order and advances them
// through the transit lifecycle. It keeps tracking IDs only. Finished parcels
// stay listed and are skipped by status.
type ShipmentLedger struct {
	ids       []string
	enrolled  map[string]struct{}
	lastSweep time.Time
}

// NewShipmentLedger creates an empty ledger.
func NewShipmentLedger() *ShipmentLedger {
	return &ShipmentLedger{enrolled: make(map[string]struct{})}
}

// Append enrolls id and reports whether it was new. A parcel recalled by undo
// and dispatched again keeps its original position.
func (l *ShipmentLedger) Append(id string) bool {
	if _, ok := l.enrolled[id]; ok {
		return false
	}
	l.enrolled[id] = struct{}{}
	l.ids = append(l.ids, id)
	return true
}

// Len returns the number of enrolled parcels, finished ones included.
func (l *ShipmentLedger) Len() int {
	return len(l.ids)
}

// Sweep advances every enrolled parcel by at most one lifecycle step:
//
//   - Loading becomes InTransit once LoadingDelay has passed since the last update
//   - InTransit may go Missing on MissingChance, otherwise becomes DeliveryAttempt at arrival
//   - DeliveryAttempt becomes Delivered on DeliveryChance; otherwise the attempt
//     counter grows and the parcel retries (InTransit, arrival now+RetryDelay)
//     or, at MaxAttempts, is Returned
//
// A parcel updated at or after now is left alone, and a sweep whose now is not
// after the previous sweep's does nothing, so repeating a sweep has no effect.
func (l *ShipmentLedger) Sweep(now time.Time, store *ParcelStore, rng kernel.Random, policy LifecyclePolicy) []Transition {
	if !now.After(l.lastSweep) {
		return nil
	}
	l.lastSweep = now

	var out []Transition
	for _, id := range l.ids {
		p, ok := store.Lookup(id)
		if !ok || !p.Status().IsInPipeline() || !now.After(p.LastUpdateTime()) {
			continue
		}
		if t, moved := advance(p, now, rng, policy); moved {
			out = append(out, t)
		}
	}
	return out
}

// Active returns views of the parcels currently loading or on the road, in
// dispatch order.
func (l *ShipmentLedger) Active(store *ParcelStore) []parcel.View {
	var out []parcel.View
	for _, id := range l.ids {
		p, ok := store.Lookup(id)
		if ok && p.Status().IsMoving() {
			out = append(out, p.View())
		}
	}
	return out
}

func advance(p *parcel.Parcel, now time.Time, rng kernel.Random, policy LifecyclePolicy) (Transition, bool) {
	from := p.Status()

	var (
		to                    parcel.Status
		description, location string
	)
	switch from {
	case parcel.Loading:
		if now.Before(p.LastUpdateTime().Add(policy.LoadingDelay)) {
			return Transition{}, false
		}
		to, description, location = parcel.InTransit, "Vehicle Departed", "On Road"

	case parcel.InTransit:
		switch {
		case policy.MissingChance.Roll(rng):
			to, description, location = parcel.Missing, "Signal Lost - Investigation Started", "Unknown"
		case !now.Before(p.ArrivalTime()):
			to, description, location = parcel.DeliveryAttempt, "Arrived at Destination Hub", p.Destination()
		default:
			return Transition{}, false
		}

	case parcel.DeliveryAttempt:
		if policy.DeliveryChance.Roll(rng) {
			to, description, location = parcel.Delivered, "Handed to Recipient", "Doorstep"
			break
		}
		if p.RecordFailedAttempt() >= policy.MaxAttempts {
			to, description, location = parcel.Returned, "Max Attempts Reached - RTS", "Local Hub"
			break
		}
		to, description, location = parcel.InTransit, "Recipient Unavailable - Retrying", "Local Hub"
		p.RescheduleArrival(now.Add(policy.RetryDelay))

	default:
		return Transition{}, false
	}

	if err := p.UpdateStatus(to, description, location, now); err != nil {
		return Transition{}, false
	}
	return Transition{
		ParcelID:    p.ID(),
		From:        from,
		To:          to,
		At:          now,
		Description: description,
		Location:    location,
	}, true
}
