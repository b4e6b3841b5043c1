package revenue

// Passenger is a booking on a seat for a particular origin-destination.
type Passenger struct {
	Origin      *Station `groups:"basic"`
	Destination *Station `groups:"basic"`

	// Days relative to departure, negative before departure
	SaleDayX int     `groups:"basic"`
	Price    float64 `groups:"basic"`
}

func NewPassenger(origin *Station, destination *Station, saleDayX int, price float64) *Passenger {
	return &Passenger{
		Origin:      origin,
		Destination: destination,
		SaleDayX:    saleDayX,
		Price:       price,
	}
}
