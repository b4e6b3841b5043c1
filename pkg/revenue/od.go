package revenue

import (
	"sort"
)

// OD (Origin-Destination) represents the transportation facility between two stops, bought by a passenger.
//
// A service whose itinerary is A-B-C-D has up to six ODs: A-B, A-C, A-D, B-C, B-D and C-D.
type OD struct {
	service *Service

	Origin      *Station
	Destination *Station

	passengers []*Passenger
}

func (od *OD) Service() *Service {
	return od.service
}

func (od *OD) Passengers() []*Passenger {
	return od.passengers
}

// Legs returns the legs crossed by the OD, in itinerary order
func (od *OD) Legs() []*Leg {
	itinerary := od.service.Itinerary()
	start := stationIndex(itinerary, od.Origin)
	end := stationIndex(itinerary, od.Destination)

	if start < 0 || end < start {
		return []*Leg{}
	}

	return od.service.legs[start:end]
}

// HistoryRecord aggregates the sales of a single day-x
type HistoryRecord struct {
	SaleDayX int     `json:"sale_day_x" groups:"basic"`
	Count    int     `json:"count" groups:"basic"`
	Revenue  float64 `json:"revenue" groups:"basic"`
}

// History reports the number of passengers sold and the revenue made for each sale day-x, ordered by day-x
func (od *OD) History() []HistoryRecord {
	return BuildHistory(od.passengers)
}

// BuildHistory sorts the passengers by sale day-x and folds every run of equal day-x into one record
func BuildHistory(passengers []*Passenger) []HistoryRecord {
	sorted := make([]*Passenger, len(passengers))
	copy(sorted, passengers)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SaleDayX < sorted[j].SaleDayX
	})

	history := []HistoryRecord{}

	for _, passenger := range sorted {
		last := len(history) - 1

		if last >= 0 && history[last].SaleDayX == passenger.SaleDayX {
			history[last].Count++
			history[last].Revenue += passenger.Price
			continue
		}

		history = append(history, HistoryRecord{
			SaleDayX: passenger.SaleDayX,
			Count:    1,
			Revenue:  passenger.Price,
		})
	}

	return history
}
