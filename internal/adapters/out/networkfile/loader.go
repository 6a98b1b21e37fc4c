// Package networkfile reads delivery network definitions from YAML.
//
//	hub: Lahore
//	capacity: 15
//	path_limit: 5
//	cities:
//	  - {name: Lahore, zone: Zone A}
//	  - {name: Multan, zone: Zone A}
//	roads:
//	  - {from: Lahore, to: Multan, distance: 340}
//
// capacity and path_limit are optional. Unknown keys are rejected.
package networkfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"parceltrack/internal/core/domain/model/network"

	"gopkg.in/yaml.v3"
)

type cityDTO struct {
	Name string `yaml:"name"`
	Zone string `yaml:"zone"`
}

type roadDTO struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Distance int    `yaml:"distance"`
}

type definitionDTO struct {
	Hub       string    `yaml:"hub"`
	Capacity  int       `yaml:"capacity"`
	PathLimit int       `yaml:"path_limit"`
	Cities    []cityDTO `yaml:"cities"`
	Roads     []roadDTO `yaml:"roads"`
}

// Load reads the definition at path.
func Load(path string) (network.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return network.Definition{}, fmt.Errorf("open network file: %w", err)
	}
	defer f.Close()

	def, err := Decode(f)
	if err != nil {
		return network.Definition{}, fmt.Errorf("network file %s: %w", path, err)
	}
	return def, nil
}

// Decode reads one YAML document from r.
func Decode(r io.Reader) (network.Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var dto definitionDTO
	if err := dec.Decode(&dto); err != nil {
		if errors.Is(err, io.EOF) {
			return network.Definition{}, errors.New("empty network definition")
		}
		return network.Definition{}, fmt.Errorf("decode network definition: %w", err)
	}

	def := network.Definition{
		Hub:       dto.Hub,
		Capacity:  dto.Capacity,
		PathLimit: dto.PathLimit,
		Cities:    make([]network.CityDefinition, 0, len(dto.Cities)),
		Roads:     make([]network.RoadDefinition, 0, len(dto.Roads)),
	}
	for _, c := range dto.Cities {
		def.Cities = append(def.Cities, network.CityDefinition{Name: c.Name, Zone: c.Zone})
	}
	for _, r := range dto.Roads {
		def.Roads = append(def.Roads, network.RoadDefinition{From: r.From, To: r.To, Distance: r.Distance})
	}
	return def, nil
}

// Encode writes def as YAML. Loading the output yields an equal definition.
func Encode(w io.Writer, def network.Definition) error {
	dto := definitionDTO{
		Hub:       def.Hub,
		Capacity:  def.Capacity,
		PathLimit: def.PathLimit,
		Cities:    make([]cityDTO, 0, len(def.Cities)),
		Roads:     make([]roadDTO, 0, len(def.Roads)),
	}
	for _, c := range def.Cities {
		dto.Cities = append(dto.Cities, cityDTO{Name: c.Name, Zone: c.Zone})
	}
	for _, r := range def.Roads {
		dto.Roads = append(dto.Roads, roadDTO{From: r.From, To: r.To, Distance: r.Distance})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dto); err != nil {
		return fmt.Errorf("encode network definition: %w", err)
	}
	return enc.Close()
}
