package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/revenue/pkg/manifest"
	"github.com/travigo/revenue/pkg/revenue"
	"golang.org/x/exp/slices"
)

var ErrServiceNotFound = errors.New("Could not find Service matching Service Name")

// Registry keeps the loaded services in memory.
// Every service has its own lock so a single writer can load passengers while other services are read.
type Registry struct {
	mutex   sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	mutex    sync.RWMutex
	service  *revenue.Service
	stations map[string]*revenue.Station
}

// Booking is a passenger identified by station names, as received from the outside world
type Booking struct {
	Service     string  `json:"service"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	SaleDayX    int     `json:"sale_day_x"`
	Price       float64 `json:"price"`
}

func New() *Registry {
	return &Registry{
		entries: map[string]*entry{},
	}
}

func (r *Registry) Register(definition manifest.ServiceDefinition) error {
	service, stations, err := definition.Build()
	if err != nil {
		return err
	}

	r.Add(service, stations)

	return nil
}

// Add stores the service, replacing any service already registered under the same name
func (r *Registry) Add(service *revenue.Service, stations map[string]*revenue.Station) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.entries[service.Name] = &entry{
		service:  service,
		stations: stations,
	}

	log.Info().Str("service", service.Name).Int("stations", len(stations)).Msg("Registered service")
}

func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

func (r *Registry) get(name string) (*entry, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	e, exists := r.entries[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
	}

	return e, nil
}

// acquire locks the entry currently registered under name.
// The lookup is repeated when Add replaced the entry before its lock was taken.
func (r *Registry) acquire(name string, write bool) (*entry, func(), error) {
	for {
		e, err := r.get(name)
		if err != nil {
			return nil, nil, err
		}

		unlock := e.mutex.RUnlock
		if write {
			e.mutex.Lock()
			unlock = e.mutex.Unlock
		} else {
			e.mutex.RLock()
		}

		r.mutex.RLock()
		current := r.entries[name] == e
		r.mutex.RUnlock()

		if current {
			return e, unlock, nil
		}

		unlock()
	}
}

// Read runs fn while holding the read lock of the service
func (r *Registry) Read(name string, fn func(*revenue.Service) error) error {
	e, unlock, err := r.acquire(name, false)
	if err != nil {
		return err
	}
	defer unlock()

	return fn(e.service)
}

// LoadBookings resolves the bookings station names and loads them in the service manifest
func (r *Registry) LoadBookings(name string, bookings []Booking) (int, error) {
	e, unlock, err := r.acquire(name, true)
	if err != nil {
		return 0, err
	}
	defer unlock()

	var passengers []*revenue.Passenger
	for _, booking := range bookings {
		origin := e.stations[booking.Origin]
		destination := e.stations[booking.Destination]

		if origin == nil || destination == nil {
			log.Debug().Str("service", name).Str("origin", booking.Origin).Str("destination", booking.Destination).Msg("Booking for unknown station")
			continue
		}

		passengers = append(passengers, revenue.NewPassenger(origin, destination, booking.SaleDayX, booking.Price))
	}

	loaded := len(passengers) - len(e.service.UnmatchedPassengers(passengers))
	e.service.LoadPassengerManifest(passengers)

	return loaded, nil
}

type ServiceSnapshot struct {
	Name          string    `groups:"basic"`
	DepartureDate time.Time `groups:"basic"`
	DayX          int       `groups:"basic"`

	Stations []string `groups:"basic"`

	LegLoads []LegLoad `groups:"detailed"`
	ODSales  []ODSales `groups:"detailed"`
}

type LegLoad struct {
	Origin      string `groups:"basic,detailed"`
	Destination string `groups:"basic,detailed"`
	Passengers  int    `groups:"basic,detailed"`
}

type ODSales struct {
	Origin      string  `groups:"detailed"`
	Destination string  `groups:"detailed"`
	Passengers  int     `groups:"detailed"`
	Revenue     float64 `groups:"detailed"`
}

// Snapshot copies the current state of a service so it can be used without holding its lock
func (r *Registry) Snapshot(name string) (*ServiceSnapshot, error) {
	snapshot := &ServiceSnapshot{}

	err := r.Read(name, func(service *revenue.Service) error {
		if err := copier.Copy(snapshot, service); err != nil {
			return err
		}

		snapshot.DayX = service.DayX()

		for _, station := range service.Itinerary() {
			snapshot.Stations = append(snapshot.Stations, station.Name)
		}

		for _, leg := range service.Legs() {
			snapshot.LegLoads = append(snapshot.LegLoads, LegLoad{
				Origin:      leg.Origin.Name,
				Destination: leg.Destination.Name,
				Passengers:  len(leg.Passengers()),
			})
		}

		for _, od := range service.ODs() {
			sales := ODSales{
				Origin:      od.Origin.Name,
				Destination: od.Destination.Name,
				Passengers:  len(od.Passengers()),
			}
			for _, passenger := range od.Passengers() {
				sales.Revenue += passenger.Price
			}

			snapshot.ODSales = append(snapshot.ODSales, sales)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// LoadFromFile registers every service defined in the YAML file
func LoadFromFile(path string) (*Registry, error) {
	definitions, err := manifest.LoadServiceDefinitions(path)
	if err != nil {
		return nil, err
	}

	r := New()
	for _, definition := range definitions {
		if err := r.Register(definition); err != nil {
			return nil, err
		}
	}

	return r, nil
}
