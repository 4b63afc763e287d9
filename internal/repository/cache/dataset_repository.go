package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/waste-analytics/internal/config"
	"github.com/waste-analytics/internal/domain"
	"github.com/waste-analytics/internal/domain/repository"
	"go.uber.org/zap"
)

type datasetRepository struct {
	cache  repository.CacheRepository
	key    string
	logger *zap.Logger
}

// NewDatasetRepository создает источник датасета, читающий JSON-документ из ключа Redis
func NewDatasetRepository(cache repository.CacheRepository, key string, logger *zap.Logger) repository.DatasetRepository {
	return &datasetRepository{cache: cache, key: key, logger: logger}
}

func (r *datasetRepository) Name() string {
	return config.SourceRedis
}

func (r *datasetRepository) Fetch(ctx context.Context) ([]domain.Record, error) {
	data, err := r.cache.Get(ctx, r.key)
	if err != nil {
		return nil, domain.NewLoadError(r.Name(), err)
	}
	if data == nil {
		return nil, domain.NewLoadError(r.Name(), fmt.Errorf("key %s not found", r.key))
	}

	records, err := domain.DecodeRecords(data)
	if err != nil {
		r.logger.Error("Failed to decode dataset from redis", zap.String("key", r.key), zap.Error(err))
		return nil, domain.NewLoadError(r.Name(), err)
	}

	return records, nil
}

// PublishDataset записывает записи в ключ в формате документа датасета
func PublishDataset(ctx context.Context, cache repository.CacheRepository, key string, records []domain.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	return cache.Set(ctx, key, data, time.Duration(0))
}
