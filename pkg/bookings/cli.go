package bookings

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/revenue/pkg/cachedreports"
	"github.com/travigo/revenue/pkg/consumer"
	"github.com/travigo/revenue/pkg/redis_client"
	"github.com/travigo/revenue/pkg/registry"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "bookings",
		Usage: "Consume bookings from the Redis queue",
		Subcommands: []*cli.Command{
			{
				Name:  "consume",
				Usage: "run the bookings queue consumers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "services",
						Usage:    "YAML file of service definitions",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "consumers",
						Value: 5,
						Usage: "number of queue consumers",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Value: 20,
						Usage: "bookings consumed per batch",
					},
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "listen target for the queue stats server",
					},
				},
				Action: func(c *cli.Context) error {
					serviceRegistry, err := registry.LoadFromFile(c.String("services"))
					if err != nil {
						return err
					}

					if err := redis_client.Connect(); err != nil {
						return err
					}

					cache := &cachedreports.Cache{}
					cache.Setup(redis_client.Client)

					redisConsumer := &consumer.RedisConsumer{
						QueueName:       QueueName,
						NumberConsumers: c.Int("consumers"),
						BatchSize:       c.Int("batch-size"),
						Timeout:         2 * time.Second,
						Consumer:        NewBatchConsumer(serviceRegistry, cache),
					}
					if err := redisConsumer.Setup(redis_client.QueueConnection); err != nil {
						return err
					}

					go func() {
						if err := redisConsumer.ServeStats(c.String("stats-listen"), redis_client.QueueConnection, redis_client.Client); err != nil {
							log.Error().Err(err).Msg("Stats server stopped")
						}
					}()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					<-signals

					log.Info().Msg("Stopping bookings consumers")
					<-redis_client.QueueConnection.StopAllConsuming()

					return nil
				},
			},
		},
	}
}
