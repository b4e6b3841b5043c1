package routes

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/revenue/pkg/cachedreports"
	"github.com/travigo/revenue/pkg/registry"
	"github.com/travigo/revenue/pkg/report"
	"github.com/travigo/revenue/pkg/revenue"
)

type Services struct {
	Registry *registry.Registry
	// Cache is optional, history is computed on every request without it
	Cache *cachedreports.Cache
}

func ServicesRouter(router fiber.Router, s *Services) {
	router.Get("/", s.listServices)
	router.Get("/:service", s.getService)
	router.Get("/:service/itinerary", s.getItinerary)
	router.Get("/:service/legs", s.getLegs)
	router.Get("/:service/ods/:origin/:destination/history", s.getODHistory)
	router.Get("/:service/report", s.getReport)
	router.Post("/:service/passengers", s.postPassengers)
}

func groups(c *fiber.Ctx) []string {
	if c.QueryBool("detailed", false) {
		return []string{"basic", "detailed"}
	}

	return []string{"basic"}
}

func (s *Services) listServices(c *fiber.Ctx) error {
	return c.JSON(s.Registry.Names())
}

func (s *Services) getService(c *fiber.Ctx) error {
	snapshot, err := s.Registry.Snapshot(c.Params("service"))
	if err != nil {
		return sendError(c, err)
	}

	snapshotReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups(c),
	}, snapshot)
	if err != nil {
		return sendErrorStatus(c, fiber.StatusInternalServerError, "Sherrif could not reduce Service")
	}

	return c.JSON(snapshotReduced)
}

func (s *Services) getItinerary(c *fiber.Ctx) error {
	var stations []string

	err := s.Registry.Read(c.Params("service"), func(service *revenue.Service) error {
		for _, station := range service.Itinerary() {
			stations = append(stations, station.Name)
		}
		return nil
	})
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(stations)
}

func (s *Services) getLegs(c *fiber.Ctx) error {
	snapshot, err := s.Registry.Snapshot(c.Params("service"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(snapshot.LegLoads)
}

func (s *Services) getODHistory(c *fiber.Ctx) error {
	serviceName := c.Params("service")
	origin := c.Params("origin")
	destination := c.Params("destination")

	if s.Cache != nil {
		if history, found := s.Cache.GetHistory(c.Context(), serviceName, origin, destination); found {
			return c.JSON(history)
		}
	}

	var history []revenue.HistoryRecord

	err := s.Registry.Read(serviceName, func(service *revenue.Service) error {
		od := service.OD(service.Station(origin), service.Station(destination))
		if od == nil {
			return fmt.Errorf("%w: %s-%s", errODNotFound, origin, destination)
		}

		history = od.History()

		// Cached under the read lock so a concurrent load invalidates after this write
		if s.Cache != nil {
			if err := s.Cache.SetHistory(c.Context(), serviceName, origin, destination, history); err != nil {
				log.Error().Err(err).Str("service", serviceName).Msg("Failed to cache history")
			}
		}

		return nil
	})
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(history)
}

func (s *Services) getReport(c *fiber.Ctx) error {
	var salesReport *report.Report

	err := s.Registry.Read(c.Params("service"), func(service *revenue.Service) error {
		var err error
		salesReport, err = report.Build(service, report.Options{
			Filter:  c.Query("filter"),
			Horizon: c.Query("horizon"),
		})

		return err
	})
	if errors.Is(err, registry.ErrServiceNotFound) {
		return sendError(c, err)
	} else if err != nil {
		return sendErrorStatus(c, fiber.StatusBadRequest, err.Error())
	}

	reportReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups(c),
	}, salesReport)
	if err != nil {
		return sendErrorStatus(c, fiber.StatusInternalServerError, "Sherrif could not reduce Report")
	}

	return c.JSON(reportReduced)
}

func (s *Services) postPassengers(c *fiber.Ctx) error {
	serviceName := c.Params("service")

	var bookings []registry.Booking
	if err := c.BodyParser(&bookings); err != nil {
		return sendErrorStatus(c, fiber.StatusBadRequest, "Could not parse bookings")
	}

	loaded, err := s.Registry.LoadBookings(serviceName, bookings)
	if err != nil {
		return sendError(c, err)
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(context.Background(), serviceName); err != nil {
			log.Error().Err(err).Str("service", serviceName).Msg("Failed to invalidate cached reports")
		}
	}

	return c.JSON(fiber.Map{
		"received": len(bookings),
		"loaded":   loaded,
	})
}
