package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; (nil, nil) при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Expire заново выставляет TTL существующему ключу.
	// Возвращает false, если ключа уже нет.
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Health проверяет доступность кеша
	Health(ctx context.Context) error
}
