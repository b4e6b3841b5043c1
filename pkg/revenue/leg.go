package revenue

// Leg is a set of two consecutive stops.
//
// A service whose itinerary is A-B-C-D has three legs: A-B, B-C and C-D.
type Leg struct {
	service *Service

	Origin      *Station
	Destination *Station
}

func (l *Leg) Service() *Service {
	return l.service
}

// Passengers returns every passenger occupying a seat on the leg, that is the
// passengers of every OD whose segment covers it. The list is rebuilt on each call.
func (l *Leg) Passengers() []*Passenger {
	itinerary := l.service.Itinerary()
	legOrigin := stationIndex(itinerary, l.Origin)
	legDestination := stationIndex(itinerary, l.Destination)

	var passengers []*Passenger

	for _, od := range l.service.ods {
		odOrigin := stationIndex(itinerary, od.Origin)
		odDestination := stationIndex(itinerary, od.Destination)

		if legOrigin >= odOrigin && legDestination <= odDestination {
			passengers = append(passengers, od.passengers...)
		}
	}

	return passengers
}
