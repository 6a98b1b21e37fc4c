package queries

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrListParcelsQueryIsNotConstructed = errors.New(
		"ListParcelsQuery must be created via NewListParcelsQuery constructor",
	)
)

// ListParcelsQuery lists parcels in intake order, optionally restricted to
// one status.
type ListParcelsQuery struct { //nolint:recvcheck //using for validation
	status    parcel.Status
	hasStatus bool

	guard guard.ConstructorGuard
}

// NewListParcelsQuery accepts an empty filter, a status ordinal or a status
// name such as "In Transit" or "intransit".
func NewListParcelsQuery(status string) (ListParcelsQuery, error) {
	q := ListParcelsQuery{guard: guard.NewConstructorGuard()}

	status = strings.TrimSpace(status)
	if status == "" {
		return q, nil
	}

	s, err := parcel.ParseStatus(status)
	if err != nil {
		return ListParcelsQuery{}, err
	}
	q.status, q.hasStatus = s, true
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

// Status returns the filter and whether one is set.
func (q ListParcelsQuery) Status() (parcel.Status, bool) {
	return q.status, q.hasStatus
}
