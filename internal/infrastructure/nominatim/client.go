package nominatim

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/muesli/gominatim"
	"github.com/station-locator/internal/config"
	"github.com/station-locator/internal/domain"
	"github.com/station-locator/internal/domain/repository"
	"github.com/station-locator/internal/pkg/errors"
	"go.uber.org/zap"
)

type lookupResult struct {
	results []gominatim.SearchResult
	err     error
}

const defaultMaxInFlight = 8

type client struct {
	slots  chan struct{}
	logger *zap.Logger
}

// NewNominatimClient настраивает gominatim на сервер из конфигурации.
// gominatim хранит адрес сервера глобально и ходит через http.DefaultClient,
// поэтому клиент один на процесс, а таймаут выставляется DefaultClient.
func NewNominatimClient(cfg *config.NominatimConfig, logger *zap.Logger) repository.GeocoderRepository {
	gominatim.SetServer(cfg.URL)

	if cfg.RequestTimeout > 0 && (http.DefaultClient.Timeout == 0 || http.DefaultClient.Timeout > cfg.RequestTimeout) {
		http.DefaultClient.Timeout = cfg.RequestTimeout
	}

	maxInFlight := cfg.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxInFlight
	}

	return &client{
		slots:  make(chan struct{}, maxInFlight),
		logger: logger,
	}
}

// Geocode ищет адрес в Nominatim. gominatim не принимает context,
// поэтому запрос выполняется в горутине, а дедлайн проверяется здесь.
// Брошенный по дедлайну запрос держит слот до ответа upstream, так что
// число висящих горутин ограничено MaxInFlight.
func (c *client) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	select {
	case c.slots <- struct{}{}:
	default:
		c.logger.Warn("Nominatim lookups saturated", zap.String("address", address), zap.Int("max_in_flight", cap(c.slots)))
		return domain.Coordinates{}, errors.ErrGeocodeUnavailable.Wrap(fmt.Errorf("nominatim: %d lookups in flight", cap(c.slots)))
	}

	done := make(chan lookupResult, 1)
	go func() {
		defer func() { <-c.slots }()
		qry := gominatim.SearchQuery{Q: address}
		results, err := qry.Get()
		done <- lookupResult{results: results, err: err}
	}()

	var res lookupResult
	select {
	case <-ctx.Done():
		c.logger.Warn("Nominatim lookup timed out", zap.String("address", address), zap.Error(ctx.Err()))
		return domain.Coordinates{}, errors.ErrGeocodeUnavailable.Wrap(ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		c.logger.Warn("Nominatim lookup failed", zap.String("address", address), zap.Error(res.err))
		return domain.Coordinates{}, errors.ErrGeocodeUnavailable.Wrap(res.err)
	}

	if len(res.results) == 0 {
		return domain.Coordinates{}, errors.ErrGeocodeNotFound
	}

	coords, err := toCoordinates(res.results[0])
	if err != nil {
		return domain.Coordinates{}, errors.ErrGeocodeNotFound.Wrap(err)
	}

	c.logger.Debug("Nominatim lookup successful", zap.String("display_name", res.results[0].DisplayName))
	return coords, nil
}

func toCoordinates(result gominatim.SearchResult) (domain.Coordinates, error) {
	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("error parsing latitude: %w", err)
	}

	lng, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("error parsing longitude: %w", err)
	}

	return domain.Coordinates{lng, lat}, nil
}
