package api

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/revenue/pkg/cachedreports"
	"github.com/travigo/revenue/pkg/database"
	"github.com/travigo/revenue/pkg/redis_client"
	"github.com/travigo/revenue/pkg/registry"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the revenue web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:     "services",
						Usage:    "YAML file of service definitions",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "cache",
						Usage: "cache OD history in Redis",
					},
					&cli.BoolFlag{
						Name:  "from-database",
						Usage: "load the stored bookings of every service on startup",
					},
				},
				Action: func(c *cli.Context) error {
					serviceRegistry, err := registry.LoadFromFile(c.String("services"))
					if err != nil {
						return err
					}

					if c.Bool("from-database") {
						if err := database.Connect(); err != nil {
							return err
						}

						bookingsCollection := database.GetCollection(database.BookingsCollection)
						for _, name := range serviceRegistry.Names() {
							bookings, err := database.LoadBookings(context.Background(), bookingsCollection, name)
							if err != nil {
								return err
							}

							loaded, err := serviceRegistry.LoadBookings(name, bookings)
							if err != nil {
								return err
							}

							log.Info().Str("service", name).Int("loaded", loaded).Msg("Loaded stored bookings")
						}
					}

					var cache *cachedreports.Cache
					if c.Bool("cache") {
						if err := redis_client.Connect(); err != nil {
							return err
						}

						cache = &cachedreports.Cache{}
						cache.Setup(redis_client.Client)
					}

					log.Info().Str("listen", c.String("listen")).Msg("Starting web API")

					return SetupServer(c.String("listen"), serviceRegistry, cache)
				},
			},
		},
	}
}
