package queries

import (
	"errors"
	"strings"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrTrackParcelQueryIsNotConstructed = errors.New(
		"TrackParcelQuery must be created via NewTrackParcelQuery constructor",
	)
)

// TrackParcelQuery answers the public "where is my parcel" lookup. It may be
// served from the tracking cache.
type TrackParcelQuery struct { //nolint:recvcheck //using for validation
	trackingID string

	guard guard.ConstructorGuard
}

func NewTrackParcelQuery(trackingID string) (TrackParcelQuery, error) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return TrackParcelQuery{}, errs.NewValueIsRequiredError("tracking id")
	}
	return TrackParcelQuery{trackingID: trackingID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
}

func (q TrackParcelQuery) TrackingID() string {
	return q.trackingID
}

// TrackParcelQueryResponse reports whether the summary came from the cache.
type TrackParcelQueryResponse struct {
	Summary ports.TrackingSummary
	Cached  bool
}
