package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/revenue/pkg/api"
	"github.com/travigo/revenue/pkg/bookings"
	"github.com/travigo/revenue/pkg/database"
	"github.com/travigo/revenue/pkg/report"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("REVENUE_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("REVENUE_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "revenue",
		Description: "Revenue management reports for services, legs and origin-destinations",

		Commands: []*cli.Command{
			report.RegisterCLI(),
			api.RegisterCLI(),
			bookings.RegisterCLI(),
			database.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
