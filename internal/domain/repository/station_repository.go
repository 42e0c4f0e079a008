package repository

import (
	"context"

	"github.com/station-locator/internal/domain"
)

// StationRepository определяет методы для чтения заправочных станций
type StationRepository interface {
	// Find выполняет запрос с фильтром и проекцией.
	// При наличии условия Near записи упорядочены по расстоянию.
	Find(ctx context.Context, query domain.StationQuery) ([]domain.RawStation, error)

	// Health проверяет доступность хранилища
	Health(ctx context.Context) error
}
