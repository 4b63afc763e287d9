package repository

import (
	"context"

	"github.com/waste-analytics/internal/domain"
)

// DatasetRepository - источник датасета (файл, HTTP, PostgreSQL, Redis)
type DatasetRepository interface {
	// Fetch загружает все записи в исходном порядке.
	// Либо возвращает все записи, либо ошибку - частичной загрузки нет.
	Fetch(ctx context.Context) ([]domain.Record, error)

	// Name возвращает имя источника для логов и ошибок
	Name() string
}
