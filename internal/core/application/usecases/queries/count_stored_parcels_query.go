package queries

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrCountStoredParcelsQueryIsNotConstructed = errors.New(
		"CountStoredParcelsQuery must be created via NewCountStoredParcelsQuery constructor",
	)
)

// CountStoredParcelsQuery reports how many parcels the last persisted
// snapshot holds per status. It reads the database, not the engine, so it
// shows what a restart would restore.
type CountStoredParcelsQuery struct {
	guard guard.ConstructorGuard
}

func NewCountStoredParcelsQuery() CountStoredParcelsQuery {
	return CountStoredParcelsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q CountStoredParcelsQuery) Validate() error {
	return q.guard.Validate(ErrCountStoredParcelsQueryIsNotConstructed)
}

// CountStoredParcelsQueryResponse is one status bucket.
type CountStoredParcelsQueryResponse struct {
	Status string
	Count  int
}
