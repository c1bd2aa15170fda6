package main

import (
	"io"
	"os"

	"github.com/andresuchdata/flowpilot/backend-go/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

func newCatalogFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "catalog",
		Usage:   "YAML catalog to seed the inventory from (built-in catalog when empty)",
		EnvVars: []string{"CATALOG_FILE"},
	}
}

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "flowctl",
		Usage:     "Run the inventory automation engine from the command line",
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:  "predict",
				Usage: "Print restock predictions for every SKU",
				Flags: []cli.Flag{
					newCatalogFlag(),
				},
				Action: runPredict,
			},
			{
				Name:  "simulate",
				Usage: "Apply a single webhook event and print the resulting record and alerts",
				Flags: []cli.Flag{
					newCatalogFlag(),
					&cli.StringFlag{
						Name:     "sku",
						Usage:    "SKU the event applies to",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Event type: sale, restock, correction or anomaly",
						Value: "sale",
					},
					&cli.IntFlag{
						Name:  "delta",
						Usage: "Stock delta carried by the event",
						Value: 1,
					},
				},
				Action: runSimulate,
			},
			{
				Name:  "rules",
				Usage: "Evaluate a YAML rule file against an event context",
				Flags: []cli.Flag{
					newCatalogFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "YAML file with a top-level rules list",
						Required: true,
						EnvVars:  []string{"RULES_FILE"},
					},
					&cli.StringFlag{
						Name:     "sku",
						Usage:    "SKU in the event context",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "event-type",
						Usage: "Event type in the event context",
					},
					&cli.IntFlag{
						Name:  "stock",
						Usage: "Stock in the event context (catalog record when unset)",
					},
					&cli.Float64Flag{
						Name:  "anomaly-score",
						Usage: "Anomaly score in the event context (catalog record when unset)",
					},
				},
				Action: runRules,
			},
			{
				Name:  "journal",
				Usage: "Print the most recent journaled webhook events",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of events to print",
						Value: 20,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runJournal,
			},
		},
	}
}

func main() {
	// Keep stdout for command output.
	logger.SetOutput(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("no .env file loaded")
	}

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("flowctl failed")
	}
}
