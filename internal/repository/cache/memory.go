package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/station-locator/internal/domain/repository"
	"go.uber.org/zap"
)

const memoryCleanupInterval = 10 * time.Minute

// memoryRepository - кеш в памяти процесса (CACHE_DRIVER=memory).
// Подходит для одного инстанса и локальной разработки без Redis.
type memoryRepository struct {
	store  *gocache.Cache
	logger *zap.Logger
}

func NewMemoryRepository(logger *zap.Logger) repository.CacheRepository {
	return &memoryRepository{
		store:  gocache.New(gocache.NoExpiration, memoryCleanupInterval),
		logger: logger,
	}
}

func (r *memoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	val, found := r.store.Get(key)
	if !found {
		r.logger.Debug("Cache miss", zap.String("key", key))
		return nil, nil
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val.([]byte), nil
}

func (r *memoryRepository) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	r.store.Set(key, stored, ttl)

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// Expire перезаписывает значение с новым TTL: go-cache не умеет менять срок на месте
func (r *memoryRepository) Expire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	val, found := r.store.Get(key)
	if !found {
		return false, nil
	}

	r.store.Set(key, val, ttl)
	return true, nil
}

func (r *memoryRepository) Health(context.Context) error {
	return nil
}
