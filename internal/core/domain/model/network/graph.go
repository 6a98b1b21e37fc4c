package network

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

const (
	// DefaultCapacity is the number of cities a graph holds unless configured otherwise.
	DefaultCapacity = 15

	// DefaultPathLimit caps how many candidate paths FindPaths records.
	DefaultPathLimit = 5

	// UnknownZone is reported for names that are not in the graph.
	UnknownZone = "Unknown"
)

var (
	// ErrCityCapacityExceeded is returned by AddCity when the city table is full.
	ErrCityCapacityExceeded = errors.New("city table is full")

	// ErrCityNotFound is returned for indices or names outside the graph.
	ErrCityNotFound = errors.New("city not found")
)

// Road is one direction of an undirected road. Each road is stored twice, once
// in the road list of each endpoint.
type Road struct {
	To       int
	Distance int
	Blocked  bool
}

// City is a node of the graph. Index is assigned by AddCity and never changes.
type City struct {
	Index int
	Name  string
	Zone  string
	Roads []Road
}

// Path is one simple path found by FindPaths. Cities holds graph indices from
// start to end inclusive.
type Path struct {
	Cities   []int
	Distance int
}

// Blockage describes a road closed by BlockRandomRoad.
type Blockage struct {
	From     int
	To       int
	Distance int
}

// Graph is the delivery network: a small, fixed-capacity set of cities joined
// by undirected weighted roads. It has no internal synchronization; the
// dispatch engine serializes access.
type Graph struct {
	cities    []City
	byName    map[string]int
	capacity  int
	pathLimit int
	hub       string
}

// NewGraph creates an empty graph. Non-positive arguments fall back to
// DefaultCapacity and DefaultPathLimit.
func NewGraph(capacity, pathLimit int) *Graph {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if pathLimit <= 0 {
		pathLimit = DefaultPathLimit
	}
	return &Graph{
		cities:    make([]City, 0, capacity),
		byName:    make(map[string]int, capacity),
		capacity:  capacity,
		pathLimit: pathLimit,
	}
}

// AddCity appends a city and returns its index.
//
// Returns:
//   - ErrCityCapacityExceeded (also errs.ErrCapacityExceeded) when the table is full
//   - errs.ErrObjectAlreadyExists when the name is taken
//   - errs.ErrValueIsRequired for an empty name
func (g *Graph) AddCity(name, zone string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1, errs.NewValueIsRequiredError("city name")
	}
	if _, ok := g.byName[name]; ok {
		return -1, errs.NewObjectAlreadyExistsError("city", name)
	}
	if len(g.cities) >= g.capacity {
		return -1, fmt.Errorf("%w: %w", ErrCityCapacityExceeded, errs.NewCapacityExceededError("city table", g.capacity))
	}

	idx := len(g.cities)
	g.cities = append(g.cities, City{Index: idx, Name: name, Zone: zone})
	g.byName[name] = idx
	return idx, nil
}

// AddRoad joins u and v with a road of the given length in both directions.
// The graph is left unchanged when either index is invalid, u equals v or the
// distance is not positive.
func (g *Graph) AddRoad(u, v, distance int) error {
	if !g.valid(u) {
		return g.notFound(u)
	}
	if !g.valid(v) {
		return g.notFound(v)
	}
	if u == v {
		return errs.NewValueIsInvalidErrorWithCause("road", fmt.Errorf("city %d cannot connect to itself", u))
	}
	if distance <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("distance is invalid", fmt.Errorf("%d is not greater than 0", distance))
	}

	g.cities[u].Roads = append(g.cities[u].Roads, Road{To: v, Distance: distance})
	g.cities[v].Roads = append(g.cities[v].Roads, Road{To: u, Distance: distance})
	return nil
}

// FindPaths enumerates simple paths from start to end by depth-first search,
// skipping blocked roads and cities already on the current path. Only the first
// PathLimit paths in search order are recorded; the rest are dropped, so callers
// must not assume the result is complete. Invalid indices yield no paths.
func (g *Graph) FindPaths(start, end int) []Path {
	if !g.valid(start) || !g.valid(end) {
		return nil
	}

	var (
		paths   []Path
		visited = make([]bool, len(g.cities))
		stack   = make([]int, 0, len(g.cities))
	)

	var walk func(u, distance int)
	walk = func(u, distance int) {
		if len(paths) >= g.pathLimit {
			return
		}

		visited[u] = true
		stack = append(stack, u)
		defer func() {
			visited[u] = false
			stack = stack[:len(stack)-1]
		}()

		if u == end {
			cities := make([]int, len(stack))
			copy(cities, stack)
			paths = append(paths, Path{Cities: cities, Distance: distance})
			return
		}

		for _, road := range g.cities[u].Roads {
			if road.Blocked || visited[road.To] {
				continue
			}
			walk(road.To, distance+road.Distance)
		}
	}
	walk(start, 0)

	return paths
}

// PickShortest returns the index of the path with the smallest distance; ties
// go to the earliest path. It returns -1 for an empty set.
func PickShortest(paths []Path) int {
	best := -1
	for i, p := range paths {
		if best == -1 || p.Distance < paths[best].Distance {
			best = i
		}
	}
	return best
}

// BlockRandomRoad closes a road chosen uniformly among the roads of a uniformly
// chosen city that has at least one road. The road is closed in both directions.
// It reports false when the graph has no roads.
func (g *Graph) BlockRandomRoad(rng kernel.Random) (Blockage, bool) {
	candidates := make([]int, 0, len(g.cities))
	for i := range g.cities {
		if len(g.cities[i].Roads) > 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return Blockage{}, false
	}

	u := candidates[rng.IntN(len(candidates))]
	roads := g.cities[u].Roads
	k := rng.IntN(len(roads))
	roads[k].Blocked = true

	v := roads[k].To
	distance := roads[k].Distance
	reverse := g.cities[v].Roads
	for i := range reverse {
		if reverse[i].To == u && reverse[i].Distance == distance && !reverse[i].Blocked {
			reverse[i].Blocked = true
			break
		}
	}

	return Blockage{From: u, To: v, Distance: distance}, true
}

// ReopenRoads clears every blockage and returns the reopened roads, one entry
// per undirected road.
func (g *Graph) ReopenRoads() []Blockage {
	var reopened []Blockage
	for u := range g.cities {
		roads := g.cities[u].Roads
		for k := range roads {
			if !roads[k].Blocked {
				continue
			}
			roads[k].Blocked = false
			if u < roads[k].To {
				reopened = append(reopened, Blockage{From: u, To: roads[k].To, Distance: roads[k].Distance})
			}
		}
	}
	return reopened
}

// Hub returns the origin city of every dispatch route, or "" when unset.
func (g *Graph) Hub() string {
	return g.hub
}

// SetHub makes name the dispatch origin. The city must exist.
func (g *Graph) SetHub(name string) error {
	if _, ok := g.byName[name]; !ok {
		return fmt.Errorf("%w: %w", ErrCityNotFound, errs.NewObjectNotFoundError("hub", name))
	}
	g.hub = name
	return nil
}

// PathLimit returns the maximum number of paths FindPaths records.
func (g *Graph) PathLimit() int {
	return g.pathLimit
}

// Capacity returns the maximum number of cities.
func (g *Graph) Capacity() int {
	return g.capacity
}

// Len returns the number of cities.
func (g *Graph) Len() int {
	return len(g.cities)
}

// CityIndex looks a city up by exact name.
func (g *Graph) CityIndex(name string) (int, bool) {
	idx, ok := g.byName[name]
	return idx, ok
}

// Zone returns the zone of the named city, or UnknownZone.
func (g *Graph) Zone(name string) string {
	idx, ok := g.byName[name]
	if !ok {
		return UnknownZone
	}
	return g.cities[idx].Zone
}

// City returns a copy of the city at index i.
func (g *Graph) City(i int) (City, bool) {
	if !g.valid(i) {
		return City{}, false
	}
	return cloneCity(g.cities[i]), true
}

// Cities returns copies of all cities in index order.
func (g *Graph) Cities() []City {
	out := make([]City, len(g.cities))
	for i := range g.cities {
		out[i] = cloneCity(g.cities[i])
	}
	return out
}

// Describe maps a path to city names. Unknown indices render as "?".
func (g *Graph) Describe(p Path) []string {
	names := make([]string, len(p.Cities))
	for i, idx := range p.Cities {
		if g.valid(idx) {
			names[i] = g.cities[idx].Name
		} else {
			names[i] = "?"
		}
	}
	return names
}

func (g *Graph) valid(i int) bool {
	return i >= 0 && i < len(g.cities)
}

func (g *Graph) notFound(i int) error {
	return fmt.Errorf("%w: %w", ErrCityNotFound, errs.NewObjectNotFoundError("city index", strconv.Itoa(i)))
}

func cloneCity(c City) City {
	roads := make([]Road, len(c.Roads))
	copy(roads, c.Roads)
	c.Roads = roads
	return c
}
