package repository

import (
	"context"

	"github.com/station-locator/internal/domain"
)

// GeocoderRepository определяет методы внешнего геокодера
type GeocoderRepository interface {
	// Geocode возвращает координаты [lng, lat] первого результата для адреса.
	// Пустой ответ - errors.ErrGeocodeNotFound, сетевые ошибки и таймауты -
	// errors.ErrGeocodeUnavailable.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
