package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/jinzhu/copier"
	"github.com/travigo/revenue/pkg/revenue"
)

type PassengerRecord struct {
	OriginName      string  `csv:"origin"`
	DestinationName string  `csv:"destination"`
	SaleDayX        int     `csv:"sale_day_x"`
	Price           float64 `csv:"price"`
}

// PassengerManifest is a CSV file of bookings with origin,destination,sale_day_x,price columns
type PassengerManifest struct {
	Records []PassengerRecord
}

func (m *PassengerManifest) ParseFile(reader io.Reader) error {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	var records []PassengerRecord
	if err := gocsv.UnmarshalCSV(csvReader, &records); err != nil {
		return fmt.Errorf("decode passenger manifest: %w", err)
	}

	m.Records = append(m.Records, records...)

	return nil
}

// Passengers resolves the station names of every record against the given stations.
// Unknown names get a station of their own, no OD will match them.
func (m *PassengerManifest) Passengers(stations map[string]*revenue.Station) ([]*revenue.Passenger, error) {
	resolve := func(name string) *revenue.Station {
		station, exists := stations[name]
		if !exists {
			station = revenue.NewStation(name)
		}

		return station
	}

	passengers := make([]*revenue.Passenger, 0, len(m.Records))

	for _, record := range m.Records {
		passenger := &revenue.Passenger{}
		if err := copier.Copy(passenger, &record); err != nil {
			return nil, err
		}

		passenger.Origin = resolve(record.OriginName)
		passenger.Destination = resolve(record.DestinationName)

		passengers = append(passengers, passenger)
	}

	return passengers, nil
}

func LoadPassengerManifest(path string) (*PassengerManifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	manifest := &PassengerManifest{}
	if err := manifest.ParseFile(file); err != nil {
		return nil, err
	}

	return manifest, nil
}
