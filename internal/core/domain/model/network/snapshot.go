package network

// RoadView is a read-only road as seen from one city.
type RoadView struct {
	To       string `json:"to"`
	Distance int    `json:"distance"`
	Blocked  bool   `json:"blocked"`
}

// CityView is a read-only city with its outgoing roads.
type CityView struct {
	Name  string     `json:"name"`
	Zone  string     `json:"zone"`
	Roads []RoadView `json:"roads"`
}

// Snapshot is a name-based dump of the network for display.
type Snapshot struct {
	Hub    string     `json:"hub"`
	Cities []CityView `json:"cities"`
}

// Snapshot returns the current network including blocked roads.
func (g *Graph) Snapshot() Snapshot {
	s := Snapshot{Hub: g.hub, Cities: make([]CityView, len(g.cities))}
	for i, c := range g.cities {
		view := CityView{Name: c.Name, Zone: c.Zone, Roads: make([]RoadView, len(c.Roads))}
		for k, r := range c.Roads {
			view.Roads[k] = RoadView{To: g.cities[r.To].Name, Distance: r.Distance, Blocked: r.Blocked}
		}
		s.Cities[i] = view
	}
	return s
}
