// Package queries contains read-only operations over the dispatch engine and
// the persisted parcel records.
package queries

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetParcelQueryIsNotConstructed = errors.New(
		"GetParcelQuery must be created via NewGetParcelQuery constructor",
	)
)

// GetParcelQuery looks up one parcel with its full tracking history.
//
// Example:
//
//	query, err := NewGetParcelQuery("TRK-1001")
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	for _, e := range resp.Parcel.History {
//	    fmt.Printf("%s %s @ %s\n", e.At.Format(time.TimeOnly), e.Description, e.Location)
//	}
type GetParcelQuery struct { //nolint:recvcheck //using for validation
	trackingID string

	guard guard.ConstructorGuard
}

func NewGetParcelQuery(trackingID string) (GetParcelQuery, error) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return GetParcelQuery{}, errs.NewValueIsRequiredError("tracking id")
	}
	return GetParcelQuery{trackingID: trackingID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

func (q GetParcelQuery) TrackingID() string {
	return q.trackingID
}

// GetParcelQueryResponse carries the parcel and, while it is moving, the
// share of its travel time already elapsed.
type GetParcelQueryResponse struct {
	Parcel   parcel.View
	Progress int
}
