package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrParcelIsNotConstructed is returned when a Parcel was not created through
// NewParcel or RestoreParcel.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

const (
	createdDescription = "Pickup Request Created"
	createdLocation    = "Customer Loc"
)

// Parcel is the aggregate root of the tracking domain. The engine's parcel
// store owns every Parcel; the scheduler and the shipment ledger refer to it by
// tracking ID only.
//
// Parcel follows these invariants:
//   - The tracking ID is non-empty and never changes
//   - Weight is finite within (0, MaxWeight] and priority is within [MinPriority, MaxPriority]
//   - Every status change appends exactly one history event and stamps LastUpdateTime
//   - History is append-only
type Parcel struct {
	id          string
	destination string
	weight      float64
	priority    Priority
	zone        string
	category    WeightCategory

	status        Status
	assignedRider string
	attempts      int
	dispatchTime  time.Time
	arrivalTime   time.Time
	lastUpdate    time.Time

	history History
	guard   guard.ConstructorGuard
}

// NewParcel validates the pickup request and returns a parcel in PickupQueue
// with a single "Pickup Request Created" event stamped at createdAt.
//
// Parameters:
//   - id: caller-assigned tracking ID (non-empty)
//   - destination: destination city name (non-empty)
//   - weight: kilograms, finite and within (0, MaxWeight]
//   - priority: service class within [MinPriority, MaxPriority]
//   - zone: zone of the destination city
//   - createdAt: time of the pickup request
//
// Returns:
//   - *Parcel: the created parcel if all validations pass
//   - error: every validation failure joined with errors.Join
func NewParcel(id, destination string, weight float64, priority Priority, zone string, createdAt time.Time) (*Parcel, error) {
	p := &Parcel{
		status: PickupQueue,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setDestination(destination),
		p.setWeight(weight),
		p.setPriority(priority),
	); err != nil {
		return nil, err
	}

	p.zone = zone
	p.category = CategoryOf(weight)
	p.history.append(Event{At: createdAt, Description: createdDescription, Location: createdLocation})

	return p, nil
}

// RestoreParcel rebuilds a parcel from a persisted record. The status is forced
// directly, so the history holds only the creation event: earlier transitions
// are not part of the record. Timestamps, rider and attempt count start unset.
func RestoreParcel(rec Record, restoredAt time.Time) (*Parcel, error) {
	if err := rec.Status.Validate(); err != nil {
		return nil, err
	}

	p, err := NewParcel(rec.ID, rec.Destination, rec.Weight, Priority(rec.Priority), rec.Zone, restoredAt)
	if err != nil {
		return nil, err
	}
	p.status = rec.Status

	return p, nil
}

// Validate returns ErrParcelIsNotConstructed for zero-value parcels.
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// IsEqual compares parcels by tracking ID.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id == other.id
}

func (p *Parcel) ID() string                     { return p.id }
func (p *Parcel) Destination() string            { return p.destination }
func (p *Parcel) Weight() float64                { return p.weight }
func (p *Parcel) Priority() Priority             { return p.priority }
func (p *Parcel) Zone() string                   { return p.zone }
func (p *Parcel) WeightCategory() WeightCategory { return p.category }
func (p *Parcel) Status() Status                 { return p.status }
func (p *Parcel) DeliveryAttempts() int          { return p.attempts }
func (p *Parcel) DispatchTime() time.Time        { return p.dispatchTime }
func (p *Parcel) ArrivalTime() time.Time         { return p.arrivalTime }
func (p *Parcel) LastUpdateTime() time.Time      { return p.lastUpdate }

// AssignedRider returns the rider name, or "" before the first dispatch.
func (p *Parcel) AssignedRider() string { return p.assignedRider }

// PriorityScore is the dispatch ordering key, see Score.
func (p *Parcel) PriorityScore() int {
	return Score(p.priority, p.weight)
}

// History returns a copy of the tracking events.
func (p *Parcel) History() []Event {
	return p.history.Events()
}

// UpdateStatus moves the parcel to status, appends one history event and stamps
// LastUpdateTime with at. Setting the current status again still appends an event.
//
// Example:
//
//	err := p.UpdateStatus(parcel.Warehouse, "Arrived at Warehouse", "Central Hub", now)
func (p *Parcel) UpdateStatus(status Status, description, location string, at time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	p.status = status
	p.history.append(Event{At: at, Description: description, Location: location})
	p.lastUpdate = at
	return nil
}

// AssignDispatch records the rider and the dispatch window of a shipment.
// It does not change the status; the caller transitions to Loading alongside it.
func (p *Parcel) AssignDispatch(rider string, dispatchedAt, arrival time.Time) error {
	if strings.TrimSpace(rider) == "" {
		return errs.NewValueIsRequiredError("rider")
	}
	if arrival.Before(dispatchedAt) {
		return errs.NewValueIsInvalidErrorWithCause("arrival", fmt.Errorf("%s is before dispatch time %s", arrival, dispatchedAt))
	}

	p.assignedRider = rider
	p.dispatchTime = dispatchedAt
	p.arrivalTime = arrival
	return nil
}

// RescheduleArrival moves the expected arrival after a failed delivery attempt.
func (p *Parcel) RescheduleArrival(arrival time.Time) {
	p.arrivalTime = arrival
}

// RecordFailedAttempt increments the delivery attempt counter and returns the new count.
func (p *Parcel) RecordFailedAttempt() int {
	p.attempts++
	return p.attempts
}

// ClearArrival resets the expected arrival when a dispatch is reverted.
func (p *Parcel) ClearArrival() {
	p.arrivalTime = time.Time{}
}

// Record returns the persisted shape of the parcel.
func (p *Parcel) Record() Record {
	return Record{
		ID:          p.id,
		Destination: p.destination,
		Weight:      p.weight,
		Priority:    int(p.priority),
		Status:      p.status,
		Zone:        p.zone,
	}
}

func (p *Parcel) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("tracking id")
	}
	if strings.ContainsAny(id, ",\n\r") {
		return errs.NewValueIsInvalidErrorWithCause("tracking id", fmt.Errorf("%q contains a separator", id))
	}
	p.id = id
	return nil
}

func (p *Parcel) setDestination(destination string) error {
	if strings.TrimSpace(destination) == "" {
		return errs.NewValueIsRequiredError("destination")
	}
	p.destination = destination
	return nil
}

func (p *Parcel) setWeight(weight float64) error {
	if err := ValidateWeight(weight); err != nil {
		return err
	}
	p.weight = weight
	return nil
}

func (p *Parcel) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	p.priority = priority
	return nil
}
