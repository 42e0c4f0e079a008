package main

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/station-locator/internal/app"
	"github.com/station-locator/internal/usecase/dto"
)

func geocodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "geocode",
		Usage:     "Resolve an address to [lng, lat]",
		ArgsUsage: "<address>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Skip the geocode cache entirely",
			},
		},
		Action: func(c *cli.Context) error {
			address := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if address == "" {
				return errors.New("address is required")
			}

			cfg, log, err := setup(c)
			if err != nil {
				return err
			}
			defer log.Sync()

			geoCache, err := app.NewCache(cfg, log)
			if err != nil {
				return err
			}
			defer geoCache.Close()

			geocoder, err := app.NewGeocoder(cfg, log)
			if err != nil {
				return err
			}

			uc := app.NewGeocodeUseCase(cfg, geocoder, geoCache.Repo, log)
			coords, err := uc.Resolve(c.Context, address, !c.Bool("no-cache"))
			if err != nil {
				return err
			}

			return printJSON(dto.GeocodeResponse{Address: address, Coordinates: coords})
		},
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
