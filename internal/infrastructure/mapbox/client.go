package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/station-locator/internal/config"
	"github.com/station-locator/internal/domain"
	"github.com/station-locator/internal/domain/repository"
	"github.com/station-locator/internal/pkg/errors"
	"go.uber.org/zap"
)

// forwardResponse - ответ Mapbox Geocoding API v5 (FeatureCollection)
type forwardResponse struct {
	Type     string `json:"type"`
	Features []struct {
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"` // [lng, lat]
	} `json:"features"`
	Message string `json:"message,omitempty"`
}

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      *zap.Logger
}

// NewMapboxClient создает новый клиент для Mapbox Geocoding API
func NewMapboxClient(cfg *config.MapboxConfig, httpClient *http.Client, logger *zap.Logger) repository.GeocoderRepository {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
}

// Geocode выполняет прямое геокодирование адреса
func (c *client) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		return domain.Coordinates{}, errors.ErrGeocodeNotFound
	}

	params := url.Values{}
	params.Set("limit", "1")
	params.Set("access_token", c.accessToken)

	// Строим URL
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s",
		c.baseURL,
		url.PathEscape(address),
		params.Encode(),
	)

	c.logger.Debug("Calling Mapbox Geocoding API", zap.String("address", address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return domain.Coordinates{}, errors.ErrGeocodeUnavailable.Wrap(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Failed to execute request", zap.Error(err))
		return domain.Coordinates{}, errors.ErrGeocodeUnavailable.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return domain.Coordinates{}, errors.ErrGeocodeUnavailable.Wrap(
			fmt.Errorf("mapbox API error: status %d", resp.StatusCode))
	}

	var reply forwardResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		c.logger.Warn("Failed to decode response", zap.Error(err))
		return domain.Coordinates{}, errors.ErrGeocodeNotFound.Wrap(err)
	}

	if len(reply.Features) == 0 {
		return domain.Coordinates{}, errors.ErrGeocodeNotFound
	}

	center := reply.Features[0].Center
	if len(center) != 2 {
		return domain.Coordinates{}, errors.ErrGeocodeNotFound.Wrap(
			fmt.Errorf("mapbox feature center has %d values", len(center)))
	}

	c.logger.Debug("Mapbox Geocoding API call successful",
		zap.String("place_name", reply.Features[0].PlaceName))

	return domain.Coordinates{center[0], center[1]}, nil
}
