package parcel

import (
	"fmt"
	"strconv"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Status is the lifecycle state of a parcel. The integer values are persisted
// in parcel records and must not be reordered.
//
// Forward path:
//
//	PickupQueue -> Warehouse -> Loading -> InTransit -> DeliveryAttempt -> Delivered
//
// Side exits: DeliveryAttempt retries back to InTransit or ends in Returned,
// InTransit may end in Missing, and PickupQueue/Warehouse may be Cancelled.
// Undoing a dispatch moves any pipeline status back to Warehouse.
type Status int

const (
	// PickupQueue is the state of a freshly created parcel before intake completes.
	PickupQueue Status = iota

	// Warehouse parcels wait in the dispatch scheduler.
	Warehouse

	// Loading parcels have a rider and a route and are being loaded onto a truck.
	Loading

	// InTransit parcels are on the road toward the destination hub.
	InTransit

	// DeliveryAttempt parcels are at the destination hub awaiting hand-over.
	DeliveryAttempt

	// Delivered is terminal.
	Delivered

	// Returned is terminal: the attempt limit was reached or no route existed.
	Returned

	// Missing is terminal: the tracking signal was lost in transit.
	Missing

	// Cancelled is terminal: cancelled by an operator or by undoing intake.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		PickupQueue:     "Pickup Queue",
		Warehouse:       "Warehouse",
		Loading:         "Loading",
		InTransit:       "In Transit",
		DeliveryAttempt: "Out For Delivery",
		Delivered:       "Delivered",
		Returned:        "Returned",
		Missing:         "Missing",
		Cancelled:       "Cancelled",
	}
}

// Statuses returns every valid status in ordinal order.
func Statuses() []Status {
	return []Status{
		PickupQueue, Warehouse, Loading, InTransit, DeliveryAttempt,
		Delivered, Returned, Missing, Cancelled,
	}
}

// ParseStatus accepts either the ordinal ("3") or the display name in any case,
// with or without spaces ("in transit", "InTransit").
func ParseStatus(s string) (Status, error) {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.Atoi(trimmed); err == nil {
		status := Status(n)
		if err = status.Validate(); err != nil {
			return 0, err
		}
		return status, nil
	}

	key := normalizeStatusName(trimmed)
	for status, name := range getStatusStrings() {
		if normalizeStatusName(name) == key {
			return status, nil
		}
	}
	// DeliveryAttempt is also accepted under its identifier name.
	if key == "deliveryattempt" {
		return DeliveryAttempt, nil
	}

	return 0, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

func normalizeStatusName(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

// Validate returns an error for values outside the defined ordinals.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the display name, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no lifecycle rule moves the parcel any further.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned || s == Missing || s == Cancelled
}

// IsAwaitingDispatch reports whether the parcel belongs in the dispatch scheduler.
func (s Status) IsAwaitingDispatch() bool {
	return s == Warehouse
}

// IsInPipeline reports whether the parcel belongs to the shipment ledger's active set:
// anything dispatched but not yet finished.
func (s Status) IsInPipeline() bool {
	return s >= Loading && s <= DeliveryAttempt
}

// IsMoving reports whether the parcel shows on the live transit monitor.
func (s Status) IsMoving() bool {
	return s == Loading || s == InTransit
}

// CanCancel reports whether an operator may still cancel the parcel.
func (s Status) CanCancel() bool {
	return s == PickupQueue || s == Warehouse
}

// ValidateCancel checks that the parcel has not left the warehouse yet.
//
// Returns:
//   - nil for PickupQueue and Warehouse
//   - errs.InvariantViolationError for any later or terminal status
func (s Status) ValidateCancel() error {
	if !s.CanCancel() {
		return errs.NewInvariantViolationErrorWithCause(
			"cancel parcel",
			fmt.Errorf("parcel is already %s", s.String()),
		)
	}
	return nil
}

// ValidateDispatch checks that the parcel is waiting in the warehouse.
func (s Status) ValidateDispatch() error {
	if !s.IsAwaitingDispatch() {
		return errs.NewInvariantViolationErrorWithCause(
			"dispatch parcel",
			fmt.Errorf("%s is not a valid status to dispatch", s.String()),
		)
	}
	return nil
}

// ValidateRecall checks that a dispatch can still be reverted, i.e. the parcel
// is somewhere between loading and the delivery attempt.
func (s Status) ValidateRecall() error {
	if !s.IsInPipeline() {
		return errs.NewInvariantViolationErrorWithCause(
			"recall parcel",
			fmt.Errorf("%s is not a valid status to recall", s.String()),
		)
	}
	return nil
}
