package parcel

// Record is the persisted form of a parcel: one line or row per parcel with
// the status stored as its ordinal. History, rider and timestamps are not part
// of it.
type Record struct {
	ID          string
	Destination string
	Weight      float64
	Priority    int
	Status      Status
	Zone        string
}
