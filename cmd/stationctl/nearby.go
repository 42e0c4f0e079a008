package main

import (
	"context"
	"strconv"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/station-locator/internal/app"
	"github.com/station-locator/internal/config"
	"github.com/station-locator/internal/domain"
	"github.com/station-locator/internal/pkg/errors"
	"github.com/station-locator/internal/repository/postgres"
	"github.com/station-locator/internal/usecase"
	"github.com/station-locator/internal/usecase/dto"
)

func nearbyCommand() *cli.Command {
	return &cli.Command{
		Name:  "nearby",
		Usage: "List fuel stations, optionally around a point or an address",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "at",
				Usage: "Reference point as lng,lat",
			},
			&cli.StringFlag{
				Name:  "near",
				Usage: "Reference address, takes priority over --at",
			},
			&cli.StringFlag{
				Name:  "prices",
				Usage: "Comma separated fuel types (diesel,super_95)",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of stations (capped by LIST_LIMIT)",
			},
			&cli.IntFlag{
				Name:    "max-distance",
				Aliases: []string{"r"},
				Usage:   "Search radius in meters (capped by DISTANCE_LIMIT)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := setup(c)
			if err != nil {
				return err
			}
			defer log.Sync()

			req := dto.StationsRequest{
				Prices: c.String("prices"),
				At:     c.String("at"),
				Near:   c.String("near"),
			}
			if c.IsSet("limit") {
				req.Limit = strconv.Itoa(c.Int("limit"))
			}
			if c.IsSet("max-distance") {
				req.MaxDistance = strconv.Itoa(c.Int("max-distance"))
			}

			db, err := postgres.New(&cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			resolver, closeResolver, err := newResolver(cfg, log, req.Near != "")
			if err != nil {
				return err
			}
			defer closeResolver()

			uc := app.NewStationUseCase(cfg, db, resolver, log)
			result, err := uc.ListStations(c.Context, req)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

// newResolver поднимает кеш и геокодер только когда задан --near
func newResolver(cfg *config.Config, log *zap.Logger, needed bool) (usecase.AddressResolver, func() error, error) {
	if !needed {
		return offlineResolver{}, func() error { return nil }, nil
	}

	geoCache, err := app.NewCache(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	geocoder, err := app.NewGeocoder(cfg, log)
	if err != nil {
		geoCache.Close()
		return nil, nil, err
	}

	return app.NewGeocodeUseCase(cfg, geocoder, geoCache.Repo, log), geoCache.Close, nil
}

type offlineResolver struct{}

func (offlineResolver) Resolve(context.Context, string, bool) (domain.Coordinates, error) {
	return domain.Coordinates{}, errors.ErrGeocodeUnavailable
}
