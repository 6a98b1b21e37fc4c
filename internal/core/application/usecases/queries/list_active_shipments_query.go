package queries

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrListActiveShipmentsQueryIsNotConstructed = errors.New(
		"ListActiveShipmentsQuery must be created via NewListActiveShipmentsQuery constructor",
	)
)

// ListActiveShipmentsQuery reads the live transit monitor: every Loading or
// In Transit parcel with its travel progress.
type ListActiveShipmentsQuery struct {
	guard guard.ConstructorGuard
}

func NewListActiveShipmentsQuery() ListActiveShipmentsQuery {
	return ListActiveShipmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListActiveShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListActiveShipmentsQueryIsNotConstructed)
}
