package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с key-value хранилищем
type CacheRepository interface {
	// Get получает значение по ключу; nil, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение с TTL (0 - без срока)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)
}
