package network

import (
	"errors"
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// CityDefinition declares one city of a network definition.
type CityDefinition struct {
	Name string
	Zone string
}

// RoadDefinition declares an undirected road between two named cities.
type RoadDefinition struct {
	From     string
	To       string
	Distance int
}

// Definition is a declarative description of a network. Build turns it into a Graph.
type Definition struct {
	Hub       string
	Capacity  int
	PathLimit int
	Cities    []CityDefinition
	Roads     []RoadDefinition
}

// DefaultDefinition returns the stock delivery network: ten cities, twelve
// roads and Lahore as the hub.
func DefaultDefinition() Definition {
	return Definition{
		Hub:       "Lahore",
		Capacity:  DefaultCapacity,
		PathLimit: DefaultPathLimit,
		Cities: []CityDefinition{
			{Name: "Chichawatni", Zone: "Zone A"},
			{Name: "Islamabad", Zone: "Zone B"},
			{Name: "Karachi", Zone: "Zone C"},
			{Name: "Peshawar", Zone: "Zone B"},
			{Name: "Multan", Zone: "Zone A"},
			{Name: "Faisalabad", Zone: "Zone A"},
			{Name: "Quetta", Zone: "Zone D"},
			{Name: "Lahore", Zone: "Zone A"},
			{Name: "Rawalpindi", Zone: "Zone B"},
			{Name: "Sakhar", Zone: "Zone C"},
		},
		Roads: []RoadDefinition{
			{From: "Chichawatni", To: "Islamabad", Distance: 375},
			{From: "Chichawatni", To: "Faisalabad", Distance: 180},
			{From: "Chichawatni", To: "Multan", Distance: 345},
			{From: "Chichawatni", To: "Lahore", Distance: 105},
			{From: "Islamabad", To: "Peshawar", Distance: 155},
			{From: "Islamabad", To: "Rawalpindi", Distance: 20},
			{From: "Faisalabad", To: "Lahore", Distance: 90},
			{From: "Faisalabad", To: "Multan", Distance: 240},
			{From: "Multan", To: "Sakhar", Distance: 490},
			{From: "Sakhar", To: "Karachi", Distance: 470},
			{From: "Sakhar", To: "Quetta", Distance: 390},
			{From: "Quetta", To: "Karachi", Distance: 690},
		},
	}
}

// Build creates a graph from def. Every failure is collected, so one call
// reports all problems of a hand-written definition.
func Build(def Definition) (*Graph, error) {
	g := NewGraph(def.Capacity, def.PathLimit)

	var errList []error
	for _, c := range def.Cities {
		if _, err := g.AddCity(c.Name, c.Zone); err != nil {
			errList = append(errList, err)
		}
	}

	for _, r := range def.Roads {
		u, okU := g.CityIndex(r.From)
		v, okV := g.CityIndex(r.To)
		if !okU || !okV {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"road",
				fmt.Errorf("%s-%s references an unknown city", r.From, r.To),
			))
			continue
		}
		if err := g.AddRoad(u, v, r.Distance); err != nil {
			errList = append(errList, err)
		}
	}

	if def.Hub == "" {
		errList = append(errList, errs.NewValueIsRequiredError("hub"))
	} else if err := g.SetHub(def.Hub); err != nil {
		errList = append(errList, err)
	}

	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return g, nil
}
