package queries

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetNetworkQueryIsNotConstructed = errors.New(
		"GetNetworkQuery must be created via NewGetNetworkQuery constructor",
	)
)

// GetNetworkQuery reads the route graph with its current road blockages.
type GetNetworkQuery struct {
	guard guard.ConstructorGuard
}

func NewGetNetworkQuery() GetNetworkQuery {
	return GetNetworkQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetNetworkQuery) Validate() error {
	return q.guard.Validate(ErrGetNetworkQueryIsNotConstructed)
}
