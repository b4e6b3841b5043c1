package revenue

import "fmt"

// ValidationError is returned by the opt-in validation helpers. Loading an itinerary or a manifest never returns it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func ValidateItinerary(itinerary []*Station) error {
	if len(itinerary) < 2 {
		return &ValidationError{Field: "itinerary", Reason: fmt.Sprintf("needs at least 2 stations, got %d", len(itinerary))}
	}

	seen := map[*Station]bool{}
	for _, station := range itinerary {
		if station == nil {
			return &ValidationError{Field: "itinerary", Reason: "contains a nil station"}
		}
		if seen[station] {
			return &ValidationError{Field: "itinerary", Reason: fmt.Sprintf("station %s appears more than once", station.Name)}
		}

		seen[station] = true
	}

	return nil
}

func ValidatePassenger(passenger *Passenger) error {
	if passenger.Price < 0 {
		return &ValidationError{Field: "price", Reason: fmt.Sprintf("must not be negative, got %v", passenger.Price)}
	}

	if passenger.Origin == passenger.Destination {
		return &ValidationError{Field: "destination", Reason: "same as origin"}
	}

	return nil
}
