package services

// UndoAction is the kind of mutation an undo entry reverts.
type UndoAction int

const (
	// ActionAdd reverts an intake by cancelling the parcel.
	ActionAdd UndoAction = iota + 1
	// ActionDispatch reverts a dispatch by pulling the parcel back to the warehouse.
	ActionDispatch
)

func (a UndoAction) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionDispatch:
		return "dispatch"
	default:
		return "unknown"
	}
}

// UndoEntry is one reversible action.
type UndoEntry struct {
	Action   UndoAction
	ParcelID string
}

// UndoLedger is a LIFO stack of reversible actions.
type UndoLedger struct {
	entries []UndoEntry
}

// NewUndoLedger creates an empty ledger.
func NewUndoLedger() *UndoLedger {
	return &UndoLedger{}
}

// Push records an action.
func (l *UndoLedger) Push(action UndoAction, parcelID string) {
	l.entries = append(l.entries, UndoEntry{Action: action, ParcelID: parcelID})
}

// Pop removes and returns the most recent action.
func (l *UndoLedger) Pop() (UndoEntry, bool) {
	if len(l.entries) == 0 {
		return UndoEntry{}, false
	}
	last := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return last, true
}

// Len returns the number of recorded actions.
func (l *UndoLedger) Len() int {
	return len(l.entries)
}
