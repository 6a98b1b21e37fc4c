package rider

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when creating a rider without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrRiderIsNotConstructed is returned when using a zero-value Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")
)

// DefaultNames lists the stock fleet, one rider per load class.
func DefaultNames() []string {
	return []string{
		"InamUllah (Light Load)",
		"Haris Waheed (Heavy Load)",
		"Ahmad Gulzar (Priority)",
		"Hurarah (General)",
	}
}

// Rider is a delivery rider. A rider carries one parcel from the hub per
// dispatch and returns to the pool immediately afterwards.
type Rider struct {
	id    kernel.UUID
	name  string
	guard guard.ConstructorGuard
}

// NewRider creates a rider with a fresh ID.
func NewRider(name string) (*Rider, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameIsRequired
	}
	return &Rider{id: kernel.NewUUID(), name: name, guard: guard.NewConstructorGuard()}, nil
}

// Validate returns ErrRiderIsNotConstructed for zero-value riders.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// ID returns the rider's identifier.
func (r *Rider) ID() kernel.UUID { return r.id }

// Name returns the display name that is written onto dispatched parcels.
func (r *Rider) Name() string { return r.name }

// IsEqual compares riders by ID.
func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}
