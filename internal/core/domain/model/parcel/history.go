package parcel

import "time"

// Event is one entry in a parcel's tracking history.
type Event struct {
	At          time.Time
	Description string
	Location    string
}

// History is an append-only sequence of tracking events owned by one parcel.
type History struct {
	events []Event
}

func (h *History) append(e Event) {
	h.events = append(h.events, e)
}

// Events returns a copy of the events in the order they happened.
func (h *History) Events() []Event {
	out := make([]Event, len(h.events))
	copy(out, h.events)
	return out
}

// Len returns the number of recorded events.
func (h *History) Len() int {
	return len(h.events)
}

// Last returns the most recent event.
func (h *History) Last() (Event, bool) {
	if len(h.events) == 0 {
		return Event{}, false
	}
	return h.events[len(h.events)-1], true
}
