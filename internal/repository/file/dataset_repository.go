package file

import (
	"context"
	"fmt"
	"os"

	"github.com/waste-analytics/internal/config"
	"github.com/waste-analytics/internal/domain"
	"github.com/waste-analytics/internal/domain/repository"
	"go.uber.org/zap"
)

type datasetRepository struct {
	path   string
	logger *zap.Logger
}

// NewDatasetRepository создает источник датасета из локального JSON-файла
func NewDatasetRepository(path string, logger *zap.Logger) repository.DatasetRepository {
	return &datasetRepository{path: path, logger: logger}
}

func (r *datasetRepository) Name() string {
	return config.SourceFile
}

func (r *datasetRepository) Fetch(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewLoadError(r.Name(), err)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Error("Failed to read dataset file", zap.String("path", r.path), zap.Error(err))
		return nil, domain.NewLoadError(r.Name(), fmt.Errorf("read %s: %w", r.path, err))
	}

	records, err := domain.DecodeRecords(data)
	if err != nil {
		r.logger.Error("Failed to decode dataset file", zap.String("path", r.path), zap.Error(err))
		return nil, domain.NewLoadError(r.Name(), err)
	}

	r.logger.Debug("Dataset file read", zap.String("path", r.path), zap.Int("records", len(records)))
	return records, nil
}
