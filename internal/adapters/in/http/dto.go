package http

import (
	"time"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewParcel is the body of POST /api/v1/parcels.
type NewParcel struct {
	TrackingID  string  `json:"tracking_id"`
	Destination string  `json:"destination"`
	Weight      float64 `json:"weight"`
	Priority    int     `json:"priority"`
}

// NewDispatch is the optional body of POST /api/v1/dispatches.
type NewDispatch struct {
	Route *int `json:"route,omitempty"`
}

type Event struct {
	At          time.Time `json:"at"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
}

type Parcel struct {
	ID               string     `json:"id"`
	Destination      string     `json:"destination"`
	Zone             string     `json:"zone"`
	Weight           float64    `json:"weight"`
	WeightCategory   string     `json:"weight_category"`
	Priority         int        `json:"priority"`
	PriorityScore    int        `json:"priority_score"`
	Status           string     `json:"status"`
	StatusCode       int        `json:"status_code"`
	AssignedRider    string     `json:"assigned_rider,omitempty"`
	DeliveryAttempts int        `json:"delivery_attempts"`
	DispatchTime     *time.Time `json:"dispatch_time,omitempty"`
	ArrivalTime      *time.Time `json:"arrival_time,omitempty"`
	LastUpdate       time.Time  `json:"last_update"`
	Progress         *int       `json:"progress,omitempty"`
	History          []Event    `json:"history"`
}

type Path struct {
	Cities   []string `json:"cities"`
	Distance int      `json:"distance"`
}

type Blockage struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Distance int    `json:"distance"`
}

type Dispatch struct {
	Parcel            Parcel    `json:"parcel"`
	Rider             string    `json:"rider"`
	Candidates        []Path    `json:"candidates"`
	Recommended       int       `json:"recommended"`
	Selected          int       `json:"selected"`
	Route             Path      `json:"route"`
	TravelTimeSeconds float64   `json:"travel_time_seconds"`
	Blockage          *Blockage `json:"blockage,omitempty"`
	Rerouted          bool      `json:"rerouted"`
	Stranded          bool      `json:"stranded"`
}

type RoadEnds struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Reopened struct {
	Roads []RoadEnds `json:"roads"`
}

type Undo struct {
	Action   string `json:"action"`
	ParcelID string `json:"parcel_id"`
	Status   string `json:"status"`
}

type StoredCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

func toParcel(v parcel.View) Parcel {
	out := Parcel{
		ID:               v.ID,
		Destination:      v.Destination,
		Zone:             v.Zone,
		Weight:           v.Weight,
		WeightCategory:   string(v.WeightCategory),
		Priority:         int(v.Priority),
		PriorityScore:    v.PriorityScore,
		Status:           v.Status.String(),
		StatusCode:       int(v.Status),
		AssignedRider:    v.AssignedRider,
		DeliveryAttempts: v.DeliveryAttempts,
		LastUpdate:       v.LastUpdateTime,
		History:          make([]Event, len(v.History)),
	}
	if !v.DispatchTime.IsZero() {
		t := v.DispatchTime
		out.DispatchTime = &t
	}
	if !v.ArrivalTime.IsZero() {
		t := v.ArrivalTime
		out.ArrivalTime = &t
	}
	for i, e := range v.History {
		out.History[i] = Event{At: e.At, Description: e.Description, Location: e.Location}
	}
	return out
}

func toParcels(views []parcel.View) []Parcel {
	out := make([]Parcel, len(views))
	for i, v := range views {
		out[i] = toParcel(v)
	}
	return out
}

func toActiveShipments(shipments []services.ActiveShipment) []Parcel {
	out := make([]Parcel, len(shipments))
	for i, s := range shipments {
		out[i] = toParcel(s.Parcel)
		progress := s.Progress
		out[i].Progress = &progress
	}
	return out
}

func toDispatch(r services.DispatchResult) Dispatch {
	out := Dispatch{
		Parcel:            toParcel(r.Parcel),
		Rider:             r.Rider,
		Candidates:        make([]Path, len(r.Candidates)),
		Recommended:       r.Recommended,
		Selected:          r.Selected,
		Route:             Path{Cities: r.RouteNames, Distance: r.Route.Distance},
		TravelTimeSeconds: r.TravelTime.Seconds(),
		Rerouted:          r.Rerouted,
		Stranded:          r.Stranded,
	}
	for i, c := range r.Candidates {
		var names []string
		if i < len(r.CandidateNames) {
			names = r.CandidateNames[i]
		}
		out.Candidates[i] = Path{Cities: names, Distance: c.Distance}
	}
	if r.Blockage != nil && len(r.BlockedRoad) == 2 {
		out.Blockage = &Blockage{From: r.BlockedRoad[0], To: r.BlockedRoad[1], Distance: r.Blockage.Distance}
	}
	return out
}

func toStoredCounts(rows []queries.CountStoredParcelsQueryResponse) []StoredCount {
	out := make([]StoredCount, len(rows))
	for i, r := range rows {
		out[i] = StoredCount{Status: r.Status, Count: r.Count}
	}
	return out
}
