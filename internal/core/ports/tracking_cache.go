package ports

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/parcel"
)

// ErrTrackingSummaryNotCached is returned by TrackingCache.Get on a miss.
var ErrTrackingSummaryNotCached = errors.New("tracking summary not cached")

// TrackingSummary is the public, cacheable view of a parcel.
type TrackingSummary struct {
	TrackingID    string    `json:"tracking_id"`
	Destination   string    `json:"destination"`
	Zone          string    `json:"zone"`
	Status        string    `json:"status"`
	AssignedRider string    `json:"assigned_rider,omitempty"`
	LastEvent     string    `json:"last_event"`
	LastLocation  string    `json:"last_location"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewTrackingSummary derives the summary from a parcel view. The last history
// event supplies the description, location and timestamp.
func NewTrackingSummary(v parcel.View) TrackingSummary {
	s := TrackingSummary{
		TrackingID:    v.ID,
		Destination:   v.Destination,
		Zone:          v.Zone,
		Status:        v.Status.String(),
		AssignedRider: v.AssignedRider,
	}
	if n := len(v.History); n > 0 {
		last := v.History[n-1]
		s.LastEvent = last.Description
		s.LastLocation = last.Location
		s.UpdatedAt = last.At
	}
	return s
}

// TrackingCache stores tracking summaries with a time-to-live. Entries may be
// stale by up to that TTL.
type TrackingCache interface {
	// Put stores summaries, replacing existing entries for the same IDs.
	Put(ctx context.Context, summaries ...TrackingSummary) error

	// Get returns the cached summary or ErrTrackingSummaryNotCached.
	Get(ctx context.Context, trackingID string) (TrackingSummary, error)
}
