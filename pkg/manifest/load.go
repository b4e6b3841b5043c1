package manifest

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/revenue/pkg/revenue"
)

// LoadService builds the named service (or the first one defined) and loads the passengers of the manifest into it.
// An empty manifest path leaves the service without passengers.
func LoadService(servicesPath string, serviceName string, manifestPath string) (*revenue.Service, error) {
	definitions, err := LoadServiceDefinitions(servicesPath)
	if err != nil {
		return nil, err
	}

	var definition *ServiceDefinition
	for i := range definitions {
		if serviceName == "" || definitions[i].Name == serviceName {
			definition = &definitions[i]
			break
		}
	}
	if definition == nil {
		return nil, fmt.Errorf("service %q not defined in %s", serviceName, servicesPath)
	}

	service, stations, err := definition.Build()
	if err != nil {
		return nil, err
	}

	if manifestPath == "" {
		return service, nil
	}

	passengerManifest, err := LoadPassengerManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	passengers, err := passengerManifest.Passengers(stations)
	if err != nil {
		return nil, err
	}

	if unmatched := service.UnmatchedPassengers(passengers); len(unmatched) > 0 {
		log.Warn().Str("service", service.Name).Int("unmatched", len(unmatched)).Msg("Manifest contains passengers with no matching OD")
	}

	service.LoadPassengerManifest(passengers)

	return service, nil
}
