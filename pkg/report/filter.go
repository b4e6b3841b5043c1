package report

import (
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/senseyeio/duration"
	"github.com/travigo/revenue/pkg/revenue"
	"github.com/travigo/revenue/pkg/util"
)

// FilterEnvironment is what a filter expression can reference, eg. `Price >= 30 && Origin == "ply"`
type FilterEnvironment struct {
	SaleDayX    int
	Price       float64
	Origin      string
	Destination string
}

type passengerFilter struct {
	program *vm.Program

	hasHorizon  bool
	horizonDayX int
}

func newPassengerFilter(service *revenue.Service, options Options) (*passengerFilter, error) {
	filter := &passengerFilter{}

	if options.Filter != "" {
		program, err := expr.Compile(options.Filter, expr.Env(FilterEnvironment{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile filter: %w", err)
		}

		filter.program = program
	}

	if options.Horizon != "" {
		horizon, err := duration.ParseISO8601(options.Horizon)
		if err != nil {
			return nil, fmt.Errorf("parse horizon: %w", err)
		}

		departure := service.DepartureDate
		days := int(horizon.Shift(departure).Sub(departure) / (24 * time.Hour))

		filter.hasHorizon = true
		filter.horizonDayX = -days
	}

	return filter, nil
}

func (f *passengerFilter) empty() bool {
	return f.program == nil && !f.hasHorizon
}

func (f *passengerFilter) apply(passengers []*revenue.Passenger) ([]*revenue.Passenger, error) {
	if f.empty() {
		return passengers, nil
	}

	kept := append([]*revenue.Passenger(nil), passengers...)

	if f.hasHorizon {
		util.InPlaceFilter(&kept, func(passenger *revenue.Passenger) bool {
			return passenger.SaleDayX >= f.horizonDayX
		})
	}

	if f.program != nil {
		var runErr error

		util.InPlaceFilter(&kept, func(passenger *revenue.Passenger) bool {
			if runErr != nil {
				return false
			}

			result, err := expr.Run(f.program, FilterEnvironment{
				SaleDayX:    passenger.SaleDayX,
				Price:       passenger.Price,
				Origin:      passenger.Origin.Name,
				Destination: passenger.Destination.Name,
			})
			if err != nil {
				runErr = fmt.Errorf("run filter: %w", err)
				return false
			}

			return result.(bool)
		})

		if runErr != nil {
			return nil, runErr
		}
	}

	return kept, nil
}
