package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/station-locator/internal/domain"
	"github.com/station-locator/internal/domain/repository"
	"github.com/station-locator/internal/pkg/errors"
	"go.uber.org/zap"
)

type stationRepository struct {
	db     *sqlx.DB
	health func(ctx context.Context) error
	logger *zap.Logger
}

func NewStationRepository(db *DB) repository.StationRepository {
	return &stationRepository{
		db:     db.DB,
		health: db.Health,
		logger: db.logger,
	}
}

// Find возвращает станции в порядке хранилища (по расстоянию, если задан Near)
func (r *stationRepository) Find(ctx context.Context, q domain.StationQuery) ([]domain.RawStation, error) {
	fq := buildFindQuery(q)

	r.logger.Debug("Finding stations",
		zap.Strings("projection", q.Projection.Keys()),
		zap.Bool("near", q.Filter.Near != nil),
		zap.Int("limit", q.Limit),
	)

	rows, err := r.db.QueryContext(ctx, fq.sql, fq.args...)
	if err != nil {
		r.logger.Error("Failed to find stations", zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}
	defer rows.Close()

	stations := make([]domain.RawStation, 0, max(q.Limit, 0))
	for rows.Next() {
		dests := make([]interface{}, len(fq.columns))
		for i, col := range fq.columns {
			dests[i] = col.dest()
		}

		if err := rows.Scan(dests...); err != nil {
			r.logger.Error("Failed to scan station", zap.Error(err))
			return nil, errors.ErrDatabaseError.Wrap(err)
		}

		rec := domain.NewRawStation()
		for i, col := range fq.columns {
			if err := col.assign(&rec, dests[i]); err != nil {
				r.logger.Error("Failed to decode station", zap.Error(err))
				return nil, errors.ErrDatabaseError.Wrap(err)
			}
		}

		stations = append(stations, rec)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate stations", zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	return stations, nil
}

func (r *stationRepository) Health(ctx context.Context) error {
	return r.health(ctx)
}
