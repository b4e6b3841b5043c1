package revenue

// Station is where a service can stop to let passengers board or disembark.
// Stations are compared by identity, two stations sharing a name are distinct.
type Station struct {
	Name string
}

func NewStation(name string) *Station {
	return &Station{Name: name}
}

func (s *Station) String() string {
	if s == nil {
		return "<nil>"
	}

	return s.Name
}
