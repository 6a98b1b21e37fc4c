package parcel

import "time"

// View is a detached copy of a parcel's state. The engine hands out views so
// readers never share the live aggregate with the lifecycle sweep.
type View struct {
	ID               string
	Destination      string
	Weight           float64
	Priority         Priority
	PriorityScore    int
	Zone             string
	WeightCategory   WeightCategory
	Status           Status
	AssignedRider    string
	DeliveryAttempts int
	DispatchTime     time.Time
	ArrivalTime      time.Time
	LastUpdateTime   time.Time
	History          []Event
}

// View returns a copy of the parcel's current state.
func (p *Parcel) View() View {
	return View{
		ID:               p.id,
		Destination:      p.destination,
		Weight:           p.weight,
		Priority:         p.priority,
		PriorityScore:    p.PriorityScore(),
		Zone:             p.zone,
		WeightCategory:   p.category,
		Status:           p.status,
		AssignedRider:    p.assignedRider,
		DeliveryAttempts: p.attempts,
		DispatchTime:     p.dispatchTime,
		ArrivalTime:      p.arrivalTime,
		LastUpdateTime:   p.lastUpdate,
		History:          p.history.Events(),
	}
}
