package parcel

import (
	"fmt"
	"math"

	"parceltrack/internal/pkg/errs"
)

// Priority is the service class chosen at pickup, from 1 to 3. It feeds the
// dispatch score together with the weight.
type Priority int

const (
	MinPriority Priority = 1
	MaxPriority Priority = 3
)

// Validate checks that the priority is within [MinPriority, MaxPriority].
func (p Priority) Validate() error {
	if p < MinPriority || p > MaxPriority {
		return errs.NewValueIsOutOfRangeError("priority", int(p), int(MinPriority), int(MaxPriority))
	}
	return nil
}

// Score computes the dispatch ordering key: priority*1000 + floor(weight).
// The scheduler dispatches higher scores first.
func Score(priority Priority, weight float64) int {
	return int(priority)*1000 + int(math.Floor(weight))
}

// MaxWeight is the heaviest parcel accepted, in kilograms. It keeps Score
// within int range.
const MaxWeight = 10000.0

// ValidateWeight accepts finite weights in (0, MaxWeight].
//
// Returns:
//   - errs.ValueIsInvalidError for zero, negative, NaN and infinite weights
//   - errs.ValueIsOutOfRangeError above MaxWeight
func ValidateWeight(weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid", fmt.Errorf("%v is not a positive finite number", weight))
	}
	if weight > MaxWeight {
		return errs.NewValueIsOutOfRangeError("weight", weight, 0, MaxWeight)
	}
	return nil
}

// WeightCategory buckets parcels by weight for rider load planning.
type WeightCategory string

const (
	Light  WeightCategory = "Light"
	Medium WeightCategory = "Medium"
	Heavy  WeightCategory = "Heavy"
)

// CategoryOf returns Light below 5 kg, Medium below 20 kg and Heavy otherwise.
func CategoryOf(weight float64) WeightCategory {
	switch {
	case weight < 5:
		return Light
	case weight < 20:
		return Medium
	default:
		return Heavy
	}
}
