package bookings

import (
	"context"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/revenue/pkg/cachedreports"
	"github.com/travigo/revenue/pkg/registry"
)

const QueueName = "bookings"

// Publish pushes a booking onto the queue for the consumers to pick up
func Publish(queue rmq.Queue, booking registry.Booking) error {
	payload, err := json.Marshal(booking)
	if err != nil {
		return err
	}

	return queue.PublishBytes(payload)
}

// BatchConsumer loads the bookings of every batch into the manifests of the registered services
type BatchConsumer struct {
	Registry *registry.Registry
	Cache    *cachedreports.Cache
}

func NewBatchConsumer(registry *registry.Registry, cache *cachedreports.Cache) *BatchConsumer {
	return &BatchConsumer{
		Registry: registry,
		Cache:    cache,
	}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	var services []string
	bookings := map[string][]registry.Booking{}
	deliveries := map[string][]rmq.Delivery{}

	for _, delivery := range batch {
		var booking registry.Booking
		if err := json.Unmarshal([]byte(delivery.Payload()), &booking); err != nil {
			log.Error().Err(err).Msg("Failed to decode booking")
			reject(delivery)
			continue
		}

		if _, exists := bookings[booking.Service]; !exists {
			services = append(services, booking.Service)
		}

		bookings[booking.Service] = append(bookings[booking.Service], booking)
		deliveries[booking.Service] = append(deliveries[booking.Service], delivery)
	}

	for _, service := range services {
		loaded, err := consumer.Registry.LoadBookings(service, bookings[service])
		if err != nil {
			log.Error().Err(err).Str("service", service).Msg("Failed to load bookings")

			for _, delivery := range deliveries[service] {
				reject(delivery)
			}
			continue
		}

		log.Info().Str("service", service).Int("bookings", len(bookings[service])).Int("loaded", loaded).Msg("Loaded bookings")

		if consumer.Cache != nil {
			if err := consumer.Cache.Invalidate(context.Background(), service); err != nil {
				log.Error().Err(err).Str("service", service).Msg("Failed to invalidate cached reports")
			}
		}

		for _, delivery := range deliveries[service] {
			if err := delivery.Ack(); err != nil {
				log.Error().Err(err).Msg("Failed to ack booking")
			}
		}
	}
}

func reject(delivery rmq.Delivery) {
	if err := delivery.Reject(); err != nil {
		log.Error().Err(err).Msg("Failed to reject booking")
	}
}
