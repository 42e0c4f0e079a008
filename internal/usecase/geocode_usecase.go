package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/station-locator/internal/domain"
	"github.com/station-locator/internal/domain/repository"
	"github.com/station-locator/internal/pkg/cachekey"
	"github.com/station-locator/internal/pkg/errors"
)

// GeocodeUseCase - геокодирование адреса с кешем (cache-aside, скользящий TTL)
type GeocodeUseCase struct {
	geocoder  repository.GeocoderRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
	timeout   time.Duration
}

// NewGeocodeUseCase - создание нового GeocodeUseCase
func NewGeocodeUseCase(
	geocoder repository.GeocoderRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
	timeout time.Duration,
) *GeocodeUseCase {
	return &GeocodeUseCase{
		geocoder:  geocoder,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
		timeout:   timeout,
	}
}

// Resolve возвращает координаты [lng, lat] для адреса.
// Попадание в кеш продлевает TTL записи; промах идёт в геокодер один раз
// и при useCache сохраняет результат.
func (uc *GeocodeUseCase) Resolve(ctx context.Context, address string, useCache bool) (domain.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		return domain.Coordinates{}, errors.ErrInvalidParameter.WithDetails(map[string]interface{}{
			"param": "near",
		})
	}

	key := cachekey.Address(address)

	if useCache {
		if coords, ok := uc.fromCache(ctx, key); ok {
			return coords, nil
		}
	}

	coords, err := uc.lookup(ctx, address)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if useCache {
		uc.store(ctx, key, coords)
	}

	return coords, nil
}

// fromCache читает координаты и продлевает TTL. Ошибки кеша не фатальны:
// запрос просто уходит в геокодер.
func (uc *GeocodeUseCase) fromCache(ctx context.Context, key string) (domain.Coordinates, bool) {
	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("Geocode cache read failed, falling back to geocoder", zap.String("key", key), zap.Error(err))
		return domain.Coordinates{}, false
	}
	if data == nil {
		return domain.Coordinates{}, false
	}

	var coords domain.Coordinates
	if err := json.Unmarshal(data, &coords); err != nil {
		uc.logger.Warn("Corrupt geocode cache entry", zap.String("key", key), zap.Error(err))
		return domain.Coordinates{}, false
	}

	if _, err := uc.cacheRepo.Expire(ctx, key, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to refresh geocode cache ttl", zap.String("key", key), zap.Error(err))
	}

	uc.logger.Debug("Geocode cache hit", zap.String("key", key))
	return coords, true
}

func (uc *GeocodeUseCase) lookup(ctx context.Context, address string) (domain.Coordinates, error) {
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	start := time.Now()
	coords, err := uc.geocoder.Geocode(ctx, address)
	if err != nil {
		uc.logger.Warn("Geocoding failed",
			zap.String("address", address),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)

		// таймауты и прочие неклассифицированные ошибки - недоступность геокодера
		if ctx.Err() != nil {
			return domain.Coordinates{}, errors.ErrGeocodeUnavailable.Wrap(err)
		}
		if _, ok := errors.As(err); ok {
			return domain.Coordinates{}, err
		}
		return domain.Coordinates{}, errors.ErrGeocodeUnavailable.Wrap(err)
	}

	uc.logger.Debug("Address geocoded",
		zap.String("address", address),
		zap.Float64("lng", coords.Lng()),
		zap.Float64("lat", coords.Lat()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return coords, nil
}

func (uc *GeocodeUseCase) store(ctx context.Context, key string, coords domain.Coordinates) {
	data, err := json.Marshal(coords)
	if err != nil {
		uc.logger.Warn("Failed to encode coordinates", zap.Error(err))
		return
	}

	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache geocode result", zap.String("key", key), zap.Error(err))
	}
}
