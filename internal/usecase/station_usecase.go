package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/station-locator/internal/domain"
	"github.com/station-locator/internal/domain/repository"
	"github.com/station-locator/internal/pkg/errors"
	"github.com/station-locator/internal/pkg/limits"
	"github.com/station-locator/internal/pkg/utils"
	"github.com/station-locator/internal/pkg/validator"
	"github.com/station-locator/internal/usecase/dto"
)

// AddressResolver - геокодирование адреса в координаты [lng, lat]
type AddressResolver interface {
	Resolve(ctx context.Context, address string, useCache bool) (domain.Coordinates, error)
}

// StationUseCase - поиск заправок рядом с точкой или адресом
type StationUseCase struct {
	stationRepo repository.StationRepository
	resolver    AddressResolver
	limit       limits.Enforcer
	radius      limits.Enforcer
	logger      *zap.Logger
}

// NewStationUseCase - создание нового StationUseCase
func NewStationUseCase(
	stationRepo repository.StationRepository,
	resolver AddressResolver,
	limit limits.Enforcer,
	radius limits.Enforcer,
	logger *zap.Logger,
) *StationUseCase {
	return &StationUseCase{
		stationRepo: stationRepo,
		resolver:    resolver,
		limit:       limit,
		radius:      radius,
		logger:      logger,
	}
}

// ListStations строит фильтр и проекцию по параметрам запроса, выполняет
// запрос к хранилищу и приводит записи к форме ответа.
// Порядок записей - порядок хранилища.
func (uc *StationUseCase) ListStations(ctx context.Context, req dto.StationsRequest) (*dto.StationsResponse, error) {
	start := time.Now()

	projection := buildProjection(req.Prices)

	filter := domain.StationFilter{Category: domain.StationCategory}

	at, err := uc.referencePoint(ctx, req)
	if err != nil {
		return nil, err
	}

	included := make(map[domain.Field]struct{}, len(domain.BaseFields)+1)
	for _, f := range domain.BaseFields {
		included[f] = struct{}{}
	}

	if at != nil {
		maxDistance, err := uc.radius.Clamp(req.MaxDistance)
		if err != nil {
			return nil, err
		}
		filter.Near = &domain.NearClause{Point: *at, MaxDistance: maxDistance}
		included[domain.FieldDistance] = struct{}{}
	}

	limit, err := uc.limit.Clamp(req.Limit)
	if err != nil {
		return nil, err
	}

	raw, err := uc.stationRepo.Find(ctx, domain.StationQuery{
		Filter:     filter,
		Projection: projection,
		Limit:      limit,
	})
	if err != nil {
		uc.logger.Error("Failed to find stations", zap.Error(err))
		return nil, err
	}

	stations := make([]dto.StationRecord, 0, len(raw))
	for _, station := range raw {
		key := zap.Any("key", station.Fields[domain.FieldKey])
		onSkip := func(path string, reason error) {
			uc.logger.Warn("Skipping malformed station value", key, zap.String("path", path), zap.Error(reason))
		}

		// одна битая запись не должна ронять всю выдачу
		rec, err := Project(station, included, StationTransforms, onSkip)
		if err != nil {
			uc.logger.Warn("Skipping station that cannot be projected", key, zap.Error(err))
			continue
		}

		if _, ok := included[domain.FieldDistance]; ok {
			if loc, ok := station.Location(); ok {
				rec[string(domain.FieldDistance)] = utils.DistanceMeters(loc, *at)
			} else {
				uc.logger.Warn("Station without location", key)
			}
		}

		stations = append(stations, rec)
	}

	elapsed := time.Since(start)
	uc.logger.Debug("Stations listed",
		zap.Int("count", len(stations)),
		zap.Bool("near", filter.Near != nil),
		zap.Int("limit", limit),
		zap.Duration("elapsed", elapsed),
	)

	return &dto.StationsResponse{
		Status:     dto.StatusOK,
		Stations:   stations,
		ExecutedIn: elapsed.Seconds(),
	}, nil
}

// referencePoint: near важнее at; пустой at означает отсутствие точки
func (uc *StationUseCase) referencePoint(ctx context.Context, req dto.StationsRequest) (*domain.Coordinates, error) {
	if near := strings.TrimSpace(req.Near); near != "" {
		coords, err := uc.resolver.Resolve(ctx, near, true)
		if err != nil {
			return nil, err
		}
		return &coords, nil
	}

	return ParseAt(req.At)
}

// ParseAt разбирает "lng,lat". Пустые токены пропускаются.
func ParseAt(raw string) (*domain.Coordinates, error) {
	values := make([]float64, 0, 2)
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, errors.ErrInvalidParameter.
				WithDetails(map[string]interface{}{"param": "at", "value": raw}).
				Wrap(err)
		}
		values = append(values, v)
	}

	switch len(values) {
	case 0:
		return nil, nil
	case 2:
	default:
		return nil, errors.ErrInvalidParameter.WithDetails(map[string]interface{}{
			"param":  "at",
			"value":  raw,
			"reason": "expected lng,lat",
		})
	}

	if err := validator.Validate(dto.ReferencePoint{Lng: values[0], Lat: values[1]}); err != nil {
		return nil, err
	}

	coords := domain.Coordinates{values[0], values[1]}
	return &coords, nil
}

// buildProjection: при фильтре prices вместо всего поля запрашиваются только нужные листья
func buildProjection(rawPrices string) domain.Projection {
	var paths []domain.FieldPath
	seen := make(map[domain.FieldPath]struct{})
	for _, token := range strings.Split(rawPrices, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		path := domain.PricePath(token)
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	if len(paths) == 0 {
		return domain.FullProjection(domain.BaseFields...)
	}
	return domain.SparseProjection(domain.BaseFields, paths)
}
