// Package app собирает зависимости сервиса по конфигурации.
// Используется и HTTP сервером, и CLI.
package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/station-locator/internal/config"
	"github.com/station-locator/internal/domain/repository"
	"github.com/station-locator/internal/infrastructure/google"
	"github.com/station-locator/internal/infrastructure/mapbox"
	"github.com/station-locator/internal/infrastructure/nominatim"
	"github.com/station-locator/internal/pkg/limits"
	"github.com/station-locator/internal/repository/cache"
	"github.com/station-locator/internal/repository/postgres"
	"github.com/station-locator/internal/usecase"
)

// Cache - кеш и функция освобождения его ресурсов
type Cache struct {
	Repo  repository.CacheRepository
	Close func() error
}

// NewCache выбирает драйвер кеша по CACHE_DRIVER
func NewCache(cfg *config.Config, logger *zap.Logger) (*Cache, error) {
	switch cfg.Cache.Driver {
	case config.CacheDriverMemory:
		logger.Info("Using in-memory cache")
		return &Cache{
			Repo:  cache.NewMemoryRepository(logger),
			Close: func() error { return nil },
		}, nil
	case config.CacheDriverRedis:
		redisClient, err := cache.NewRedis(&cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		return &Cache{
			Repo:  cache.NewCacheRepository(redisClient),
			Close: redisClient.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}

// NewGeocoder выбирает провайдера геокодирования по GEOCODER_PROVIDER.
// Таймаут вызова задаётся контекстом в GeocodeUseCase, у http.Client он
// только страхует от зависших соединений.
func NewGeocoder(cfg *config.Config, logger *zap.Logger) (repository.GeocoderRepository, error) {
	httpClient := &http.Client{Timeout: 10 * cfg.Geocoder.Timeout}

	switch cfg.Geocoder.Provider {
	case config.GeocoderGoogle:
		return google.NewGeocoderClient(&cfg.Geocoder.Google, httpClient, logger), nil
	case config.GeocoderMapbox:
		return mapbox.NewMapboxClient(&cfg.Geocoder.Mapbox, httpClient, logger), nil
	case config.GeocoderNominatim:
		return nominatim.NewNominatimClient(&cfg.Geocoder.Nominatim, logger), nil
	default:
		return nil, fmt.Errorf("unknown geocoder provider %q", cfg.Geocoder.Provider)
	}
}

// NewGeocodeUseCase - геокодер с кешем по конфигурации
func NewGeocodeUseCase(
	cfg *config.Config,
	geocoder repository.GeocoderRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *usecase.GeocodeUseCase {
	return usecase.NewGeocodeUseCase(
		geocoder,
		cacheRepo,
		logger,
		cfg.Cache.GeocodeTTL,
		cfg.Geocoder.Timeout,
	)
}

// NewStationUseCase - поиск станций с лимитами из конфигурации
func NewStationUseCase(
	cfg *config.Config,
	db *postgres.DB,
	resolver usecase.AddressResolver,
	logger *zap.Logger,
) *usecase.StationUseCase {
	return usecase.NewStationUseCase(
		postgres.NewStationRepository(db),
		resolver,
		ListLimit(cfg),
		DistanceLimit(cfg),
		logger,
	)
}

func ListLimit(cfg *config.Config) limits.Enforcer {
	return limits.Enforcer{
		Param:   "limit",
		Ceiling: cfg.Limits.ListLimit,
		Default: cfg.Limits.ListDefaultCount,
	}
}

func DistanceLimit(cfg *config.Config) limits.Enforcer {
	return limits.Enforcer{
		Param:   "maxDistance",
		Ceiling: cfg.Limits.DistanceLimit,
		Default: cfg.Limits.DistanceDefault,
	}
}
