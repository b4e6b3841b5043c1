package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/revenue/pkg/manifest"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Store a service and its passenger manifest in MongoDB",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "services",
				Usage:    "YAML file of service definitions",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "name of the service, defaults to the first one defined",
			},
			&cli.StringFlag{
				Name:     "manifest",
				Usage:    "CSV passenger manifest",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			service, err := manifest.LoadService(c.String("services"), c.String("name"), c.String("manifest"))
			if err != nil {
				return err
			}

			if err := Connect(); err != nil {
				return err
			}

			ctx := context.Background()

			if err := SaveService(ctx, GetCollection(ServicesCollection), service); err != nil {
				return err
			}

			saved, err := SaveBookings(ctx, GetCollection(BookingsCollection), service)
			if err != nil {
				return err
			}

			log.Info().Str("service", service.Name).Int("bookings", saved).Msg("Stored service")

			return nil
		},
	}
}
