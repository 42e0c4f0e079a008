package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/station-locator/internal/config"
)

func main() {
	app := &cli.App{
		Name:  "stationctl",
		Usage: "Geocode addresses and query nearby fuel stations",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Write debug logs to stderr",
			},
		},
		Commands: []*cli.Command{
			geocodeCommand(),
			nearbyCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup загружает конфигурацию; логи пишутся только с --verbose,
// чтобы stdout оставался чистым JSON
func setup(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if !c.Bool("verbose") {
		return cfg, zap.NewNop(), nil
	}

	// zap.NewDevelopment пишет в stderr
	log, err := zap.NewDevelopment(zap.Fields(zap.String("service", "stationctl")))
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
