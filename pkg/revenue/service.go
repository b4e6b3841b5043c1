package revenue

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/revenue/pkg/util"
	"golang.org/x/exp/slices"
)

// Service is a facility transporting passengers between two or more stops at a specific departure date.
//
// A service is uniquely defined by its name and departure date. Its legs describe the stops it makes
// and lead to one Origin-Destination (OD) pair for every trip a passenger can buy.
type Service struct {
	Name          string
	DepartureDate time.Time

	legs []*Leg
	ods  []*OD

	odIndex map[odKey]*OD
}

type odKey struct {
	origin      *Station
	destination *Station
}

func NewService(name string, departureDate time.Time) *Service {
	return &Service{
		Name:          name,
		DepartureDate: departureDate,
	}
}

func (s *Service) Legs() []*Leg {
	return s.legs
}

func (s *Service) ODs() []*OD {
	return s.ods
}

// DayX is the number of days from today until departure, negative once the service has left.
//
// In revenue management systems the day-x scale is often preferred to dates as it is easier to manipulate.
func (s *Service) DayX() int {
	return s.DayXAt(time.Now())
}

func (s *Service) DayXAt(today time.Time) int {
	return util.DaysBetween(today, s.DepartureDate)
}

// Itinerary is the ordered list of stations the service stops at, built from its legs.
// Legs are assumed to be contiguous, this is not verified.
func (s *Service) Itinerary() []*Station {
	if len(s.legs) == 0 {
		return []*Station{}
	}

	itinerary := make([]*Station, 0, len(s.legs)+1)
	itinerary = append(itinerary, s.legs[0].Origin)

	for _, leg := range s.legs {
		itinerary = append(itinerary, leg.Destination)
	}

	return itinerary
}

// LoadItinerary replaces the legs and ODs of the service with the ones generated from the ordered stations.
func (s *Service) LoadItinerary(itinerary []*Station) {
	var legs []*Leg
	for i := 0; i < len(itinerary)-1; i++ {
		legs = append(legs, &Leg{
			service:     s,
			Origin:      itinerary[i],
			Destination: itinerary[i+1],
		})
	}

	var ods []*OD
	odIndex := map[odKey]*OD{}
	for i := range itinerary {
		for j := i + 1; j < len(itinerary); j++ {
			od := &OD{
				service:     s,
				Origin:      itinerary[i],
				Destination: itinerary[j],
			}

			ods = append(ods, od)

			key := odKey{origin: od.Origin, destination: od.Destination}
			if _, exists := odIndex[key]; !exists {
				odIndex[key] = od
			}
		}
	}

	s.legs = legs
	s.ods = ods
	s.odIndex = odIndex
}

// LoadPassengerManifest adds every passenger to the OD matching its origin and destination.
// Passengers with no matching OD are dropped.
func (s *Service) LoadPassengerManifest(passengers []*Passenger) {
	dropped := 0

	for _, passenger := range passengers {
		od := s.OD(passenger.Origin, passenger.Destination)
		if od == nil {
			dropped++
			continue
		}

		od.passengers = append(od.passengers, passenger)
	}

	if dropped > 0 {
		log.Debug().
			Str("service", s.Name).
			Int("dropped", dropped).
			Int("manifest", len(passengers)).
			Msg("Dropped passengers with no matching OD")
	}
}

// OD returns the OD between the two stations or nil if the service doesn't sell it
func (s *Service) OD(origin *Station, destination *Station) *OD {
	return s.odIndex[odKey{origin: origin, destination: destination}]
}

func (s *Service) Leg(origin *Station, destination *Station) *Leg {
	for _, leg := range s.legs {
		if leg.Origin == origin && leg.Destination == destination {
			return leg
		}
	}

	return nil
}

// Station finds a station of the itinerary by name, the first match wins
func (s *Service) Station(name string) *Station {
	for _, station := range s.Itinerary() {
		if station.Name == name {
			return station
		}
	}

	return nil
}

// UnmatchedPassengers lists the passengers LoadPassengerManifest would drop
func (s *Service) UnmatchedPassengers(passengers []*Passenger) []*Passenger {
	var unmatched []*Passenger

	for _, passenger := range passengers {
		if s.OD(passenger.Origin, passenger.Destination) == nil {
			unmatched = append(unmatched, passenger)
		}
	}

	return unmatched
}

func stationIndex(itinerary []*Station, station *Station) int {
	return slices.Index(itinerary, station)
}
