package services

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// Odds is a probability expressed as Numerator out of Denominator.
type Odds struct {
	Numerator   int
	Denominator int
}

// Roll reports whether the event happens on this draw.
func (o Odds) Roll(rng kernel.Random) bool {
	return kernel.Chance(rng, o.Numerator, o.Denominator)
}

func (o Odds) validate(name string) error {
	if o.Denominator <= 0 || o.Numerator < 0 || o.Numerator > o.Denominator {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d/%d is not a probability", o.Numerator, o.Denominator))
	}
	return nil
}

// LifecyclePolicy holds the timing and probability constants of dispatch and
// of the shipment lifecycle.
type LifecyclePolicy struct {
	// LoadingDelay is how long a parcel stays in Loading before departing.
	LoadingDelay time.Duration
	// RetryDelay is added to the sweep time after a failed delivery attempt.
	RetryDelay time.Duration
	// MaxAttempts is the number of failed attempts that returns a parcel to sender.
	MaxAttempts int
	// MinTravel is the shortest travel time of a dispatch.
	MinTravel time.Duration
	// TravelJitterSeconds adds a uniform [0, n) seconds to MinTravel.
	TravelJitterSeconds int

	BlockageChance Odds
	MissingChance  Odds
	DeliveryChance Odds
}

// DefaultLifecyclePolicy returns the stock timings: 5 s loading, 15 to 44 s of
// travel, 5 s retry delay, 3 attempts, a 2/10 blockage chance per dispatch, a
// 1/1000 chance per sweep of losing a parcel in transit and an 8/10 chance that
// a delivery attempt succeeds.
func DefaultLifecyclePolicy() LifecyclePolicy {
	return LifecyclePolicy{
		LoadingDelay:        5 * time.Second,
		RetryDelay:          5 * time.Second,
		MaxAttempts:         3,
		MinTravel:           15 * time.Second,
		TravelJitterSeconds: 30,
		BlockageChance:      Odds{Numerator: 2, Denominator: 10},
		MissingChance:       Odds{Numerator: 1, Denominator: 1000},
		DeliveryChance:      Odds{Numerator: 8, Denominator: 10},
	}
}

// Validate checks every field.
func (p LifecyclePolicy) Validate() error {
	var errList []error
	if p.LoadingDelay < 0 {
		errList = append(errList, errs.NewValueIsInvalidError("loading delay"))
	}
	if p.RetryDelay < 0 {
		errList = append(errList, errs.NewValueIsInvalidError("retry delay"))
	}
	if p.MaxAttempts < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("max attempts", p.MaxAttempts, 1, "unbounded"))
	}
	if p.MinTravel < 0 {
		errList = append(errList, errs.NewValueIsInvalidError("min travel"))
	}
	if p.TravelJitterSeconds < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("travel jitter", p.TravelJitterSeconds, 1, "unbounded"))
	}
	errList = append(errList,
		p.BlockageChance.validate("blockage chance"),
		p.MissingChance.validate("missing chance"),
		p.DeliveryChance.validate("delivery chance"),
	)
	return errors.Join(errList...)
}

// TravelTime draws the travel time of one dispatch.
func (p LifecyclePolicy) TravelTime(rng kernel.Random) time.Duration {
	return p.MinTravel + time.Duration(rng.IntN(p.TravelJitterSeconds))*time.Second
}
