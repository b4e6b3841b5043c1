package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/travigo/revenue/pkg/revenue"
	"github.com/travigo/revenue/pkg/util"
	"gopkg.in/yaml.v3"
)

// ServiceDefinition describes a service and the ordered stations it calls at
type ServiceDefinition struct {
	Name          string   `yaml:"Name"`
	DepartureDate string   `yaml:"DepartureDate"`
	Stations      []string `yaml:"Stations"`
}

// Build creates the service with one station per name and loads its itinerary
func (d *ServiceDefinition) Build() (*revenue.Service, map[string]*revenue.Station, error) {
	if d.Name == "" {
		return nil, nil, errors.New("service definition has no name")
	}

	departureDate, err := util.ParseDate(d.DepartureDate)
	if err != nil {
		return nil, nil, fmt.Errorf("service %s departure date: %w", d.Name, err)
	}

	stations := map[string]*revenue.Station{}
	var itinerary []*revenue.Station

	for _, name := range d.Stations {
		station, exists := stations[name]
		if !exists {
			station = revenue.NewStation(name)
			stations[name] = station
		}

		itinerary = append(itinerary, station)
	}

	if err := revenue.ValidateItinerary(itinerary); err != nil {
		return nil, nil, fmt.Errorf("service %s: %w", d.Name, err)
	}

	service := revenue.NewService(d.Name, departureDate)
	service.LoadItinerary(itinerary)

	return service, stations, nil
}

type ServiceDefinitions struct {
	Definitions []ServiceDefinition
}

// ParseFile decodes every YAML document in the stream as a service definition
func (s *ServiceDefinitions) ParseFile(reader io.Reader) error {
	decoder := yaml.NewDecoder(reader)

	for {
		var definition ServiceDefinition
		err := decoder.Decode(&definition)

		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return fmt.Errorf("decode service definition: %w", err)
		}

		log.Debug().Str("service", definition.Name).Int("stations", len(definition.Stations)).Msg("Loaded service definition")

		s.Definitions = append(s.Definitions, definition)
	}

	return nil
}

func LoadServiceDefinitions(path string) ([]ServiceDefinition, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	definitions := ServiceDefinitions{}
	if err := definitions.ParseFile(bytes.NewReader(contents)); err != nil {
		return nil, err
	}

	return definitions.Definitions, nil
}
