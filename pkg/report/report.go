package report

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/revenue/pkg/revenue"
)

const maxGoroutines = 16

type Options struct {
	// expr-lang boolean expression evaluated against FilterEnvironment
	Filter string
	// ISO-8601 duration, sales made earlier than this before departure are ignored
	Horizon string
}

type Report struct {
	Service       string    `groups:"basic"`
	DepartureDate time.Time `groups:"basic"`

	Passengers int     `groups:"basic"`
	Revenue    float64 `groups:"basic"`

	ODs  []ODReport  `groups:"detailed"`
	Legs []LegReport `groups:"detailed"`
}

type ODReport struct {
	Origin      string `groups:"basic,detailed"`
	Destination string `groups:"basic,detailed"`

	Passengers int     `groups:"basic,detailed"`
	Revenue    float64 `groups:"basic,detailed"`

	History []revenue.HistoryRecord `groups:"detailed"`
}

type LegReport struct {
	Origin      string `groups:"basic,detailed"`
	Destination string `groups:"basic,detailed"`

	Passengers int     `groups:"basic,detailed"`
	Revenue    float64 `groups:"basic,detailed"`
}

type indexed[T any] struct {
	index int
	value T
}

// Build generates the sales report of every OD and leg of the service.
// The service must not be modified while the report is built.
func Build(service *revenue.Service, options Options) (*Report, error) {
	filter, err := newPassengerFilter(service, options)
	if err != nil {
		return nil, err
	}

	odPool := pool.NewWithResults[indexed[ODReport]]().WithMaxGoroutines(maxGoroutines).WithErrors()
	for i, od := range service.ODs() {
		i, od := i, od
		odPool.Go(func() (indexed[ODReport], error) {
			passengers, err := filter.apply(od.Passengers())
			if err != nil {
				return indexed[ODReport]{}, err
			}

			return indexed[ODReport]{
				index: i,
				value: ODReport{
					Origin:      od.Origin.Name,
					Destination: od.Destination.Name,
					Passengers:  len(passengers),
					Revenue:     sumRevenue(passengers),
					History:     revenue.BuildHistory(passengers),
				},
			}, nil
		})
	}

	legPool := pool.NewWithResults[indexed[LegReport]]().WithMaxGoroutines(maxGoroutines).WithErrors()
	for i, leg := range service.Legs() {
		i, leg := i, leg
		legPool.Go(func() (indexed[LegReport], error) {
			passengers, err := filter.apply(leg.Passengers())
			if err != nil {
				return indexed[LegReport]{}, err
			}

			return indexed[LegReport]{
				index: i,
				value: LegReport{
					Origin:      leg.Origin.Name,
					Destination: leg.Destination.Name,
					Passengers:  len(passengers),
					Revenue:     sumRevenue(passengers),
				},
			}, nil
		})
	}

	odResults, err := odPool.Wait()
	if err != nil {
		return nil, err
	}
	legResults, err := legPool.Wait()
	if err != nil {
		return nil, err
	}

	report := &Report{
		Service:       service.Name,
		DepartureDate: service.DepartureDate,
		ODs:           unwrap(odResults),
		Legs:          unwrap(legResults),
	}

	for _, od := range report.ODs {
		report.Passengers += od.Passengers
		report.Revenue += od.Revenue
	}

	log.Debug().
		Str("service", service.Name).
		Int("ods", len(report.ODs)).
		Int("passengers", report.Passengers).
		Msg("Built sales report")

	return report, nil
}

// OD returns the report of a single OD or nil
func (r *Report) OD(origin string, destination string) *ODReport {
	for i := range r.ODs {
		if r.ODs[i].Origin == origin && r.ODs[i].Destination == destination {
			return &r.ODs[i]
		}
	}

	return nil
}

func unwrap[T any](results []indexed[T]) []T {
	sort.Slice(results, func(i, j int) bool {
		return results[i].index < results[j].index
	})

	values := make([]T, len(results))
	for i, result := range results {
		values[i] = result.value
	}

	return values
}

func sumRevenue(passengers []*revenue.Passenger) float64 {
	total := 0.0
	for _, passenger := range passengers {
		total += passenger.Price
	}

	return total
}
