package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/station-locator/internal/config"
	"github.com/station-locator/internal/domain"
	"github.com/station-locator/internal/domain/repository"
	"github.com/station-locator/internal/pkg/errors"
	"go.uber.org/zap"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat *float64 `json:"lat"`
				Lng *float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	logger     *zap.Logger
}

// NewGeocoderClient создает клиент Google Geocoding API.
// Таймаут задаётся контекстом вызова.
func NewGeocoderClient(cfg *config.GoogleConfig, httpClient *http.Client, logger *zap.Logger) repository.GeocoderRepository {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{
		httpClient: httpClient,
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		logger:     logger,
	}
}

// Geocode возвращает координаты первого результата для адреса
func (c *client) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("sensor", "false")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+params.Encode(), nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return domain.Coordinates{}, errors.ErrGeocodeUnavailable.Wrap(err)
	}

	c.logger.Debug("Calling Google Geocoding API", zap.String("address", address))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Failed to execute request", zap.Error(err))
		return domain.Coordinates{}, errors.ErrGeocodeUnavailable.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("Google API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return domain.Coordinates{}, errors.ErrGeocodeUnavailable.Wrap(
			fmt.Errorf("google API error: status %d", resp.StatusCode))
	}

	var reply geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		c.logger.Warn("Failed to decode response", zap.Error(err))
		return domain.Coordinates{}, errors.ErrGeocodeNotFound.Wrap(err)
	}

	switch reply.Status {
	case statusOK, "":
	case statusZeroResults:
		return domain.Coordinates{}, errors.ErrGeocodeNotFound
	default:
		// OVER_QUERY_LIMIT, REQUEST_DENIED, INVALID_REQUEST, UNKNOWN_ERROR
		c.logger.Error("Google API returned non-OK status",
			zap.String("status", reply.Status),
			zap.String("message", reply.ErrorMessage))
		return domain.Coordinates{}, errors.ErrGeocodeUnavailable.Wrap(
			fmt.Errorf("google API status: %s", reply.Status))
	}

	if len(reply.Results) == 0 {
		return domain.Coordinates{}, errors.ErrGeocodeNotFound
	}

	location := reply.Results[0].Geometry.Location
	if location.Lat == nil || location.Lng == nil {
		return domain.Coordinates{}, errors.ErrGeocodeNotFound.Wrap(
			fmt.Errorf("google API result without location"))
	}

	c.logger.Debug("Google Geocoding API call successful",
		zap.String("formatted_address", reply.Results[0].FormattedAddress))

	return domain.Coordinates{*location.Lng, *location.Lat}, nil
}
