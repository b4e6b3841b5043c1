package report

import (
	"fmt"
	"strings"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/revenue/pkg/elastic_client"
	"github.com/travigo/revenue/pkg/manifest"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print the sales report of a service",
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
				Name:  "manifest",
				Usage: "CSV passenger manifest",
			},
			&cli.StringFlag{
				Name:  "od",
				Usage: "only print the history of this OD, as ORIGIN:DESTINATION",
			},
			&cli.StringFlag{
				Name:  "filter",
				Usage: "expression selecting the passengers to report on, eg. 'Price > 30'",
			},
			&cli.StringFlag{
				Name:  "horizon",
				Usage: "ISO-8601 duration of the booking horizon, eg. P30D",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "dump the full report",
			},
			&cli.BoolFlag{
				Name:  "index",
				Usage: "index the OD history into Elasticsearch",
			},
		},
		Action: func(c *cli.Context) error {
			service, err := manifest.LoadService(c.String("services"), c.String("name"), c.String("manifest"))
			if err != nil {
				return err
			}

			salesReport, err := Build(service, Options{
				Filter:  c.String("filter"),
				Horizon: c.String("horizon"),
			})
			if err != nil {
				return err
			}

			if c.Bool("debug") {
				pretty.Println(salesReport)
			}

			ods := salesReport.ODs
			if odFlag := c.String("od"); odFlag != "" {
				origin, destination, found := strings.Cut(odFlag, ":")
				if !found {
					return fmt.Errorf("od must be ORIGIN:DESTINATION, got %s", odFlag)
				}

				od := salesReport.OD(origin, destination)
				if od == nil {
					return fmt.Errorf("service %s has no OD %s", service.Name, odFlag)
				}

				ods = []ODReport{*od}
			}

			for _, od := range ods {
				fmt.Printf("%s-%s\t%d passengers\t%.2f revenue\n", od.Origin, od.Destination, od.Passengers, od.Revenue)
				for _, record := range od.History {
					fmt.Printf("\t%d\t%d\t%.2f\n", record.SaleDayX, record.Count, record.Revenue)
				}
			}

			for _, leg := range salesReport.Legs {
				fmt.Printf("leg %s-%s\t%d passengers\n", leg.Origin, leg.Destination, leg.Passengers)
			}

			log.Info().
				Str("service", service.Name).
				Int("dayx", service.DayX()).
				Int("passengers", salesReport.Passengers).
				Float64("revenue", salesReport.Revenue).
				Msg("Sales report")

			if c.Bool("index") {
				if err := elastic_client.Connect(true); err != nil {
					return err
				}

				elastic_client.IndexHistory(service)
				elastic_client.WaitUntilQueueEmpty()
			}

			return nil
		},
	}
}
