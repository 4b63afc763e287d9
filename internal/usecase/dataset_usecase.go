package usecase

import (
	"context"
	"sync"

	"github.com/waste-analytics/internal/analytics"
	"github.com/waste-analytics/internal/domain"
	"github.com/waste-analytics/internal/domain/repository"
	apperrors "github.com/waste-analytics/internal/pkg/errors"
	"github.com/waste-analytics/internal/store"
	"github.com/waste-analytics/internal/usecase/dto"
	"go.uber.org/zap"
)

// DatasetUseCase управляет загрузкой датасета и отдаёт его снимки остальным сценариям
type DatasetUseCase struct {
	store    *store.Store
	repo     repository.DatasetRepository
	logger   *zap.Logger
	reloadMu sync.Mutex
}

// NewDatasetUseCase создает новый экземпляр DatasetUseCase
func NewDatasetUseCase(
	st *store.Store,
	repo repository.DatasetRepository,
	logger *zap.Logger,
) *DatasetUseCase {
	return &DatasetUseCase{
		store:  st,
		repo:   repo,
		logger: logger,
	}
}

// Load выполняет первичную загрузку. Ошибка не фатальна: сервис
// продолжает работать, а представления отвечают DATASET_UNAVAILABLE.
func (uc *DatasetUseCase) Load(ctx context.Context) error {
	_, err := uc.Reload(ctx, "startup")
	return err
}

// Reload заново читает источник и атомарно заменяет записи.
// Параллельные перезагрузки выполняются последовательно.
func (uc *DatasetUseCase) Reload(ctx context.Context, reason string) (*dto.ReloadResponse, error) {
	uc.reloadMu.Lock()
	defer uc.reloadMu.Unlock()

	uc.logger.Info("Loading dataset",
		zap.String("source", uc.repo.Name()),
		zap.String("reason", reason))

	records, err := uc.store.Load(ctx, uc.repo)
	if err != nil {
		uc.logger.Error("Failed to load dataset",
			zap.String("source", uc.repo.Name()),
			zap.Bool("previous_kept", uc.store.Loaded()),
			zap.Error(err))
		return nil, apperrors.ErrDatasetLoadFailed.WithDetails(map[string]interface{}{
			"source": uc.repo.Name(),
			"reason": err.Error(),
		})
	}

	info := uc.store.Info()
	uc.logger.Info("Dataset loaded",
		zap.String("source", info.Source),
		zap.Int("records", len(records)))

	return &dto.ReloadResponse{
		Source:   info.Source,
		Records:  info.Records,
		LoadedAt: info.LoadedAt,
	}, nil
}

// Snapshot возвращает все записи или ErrDatasetUnavailable до первой успешной загрузки
func (uc *DatasetUseCase) Snapshot() ([]domain.Record, error) {
	if !uc.store.Loaded() {
		return nil, apperrors.ErrDatasetUnavailable
	}
	return uc.store.All(), nil
}

// Filter применяет фильтр таблицы и запоминает выборку.
// Total и Records берутся из одного набора записей.
func (uc *DatasetUseCase) Filter(p analytics.PredicateSet) (*store.Selection, error) {
	if !uc.store.Loaded() {
		return nil, apperrors.ErrDatasetUnavailable
	}
	sel := uc.store.SetFiltered(p)
	return &sel, nil
}

// Filtered возвращает последнюю выборку таблицы и её фильтр
func (uc *DatasetUseCase) Filtered() ([]domain.Record, analytics.PredicateSet, error) {
	if !uc.store.Loaded() {
		return nil, analytics.PredicateSet{}, apperrors.ErrDatasetUnavailable
	}
	return uc.store.Filtered(), uc.store.Predicate(), nil
}

// Summary - сводные показатели по всем записям
func (uc *DatasetUseCase) Summary() (*domain.DatasetSummary, error) {
	records, err := uc.Snapshot()
	if err != nil {
		return nil, err
	}
	summary := analytics.Summarize(records)
	return &summary, nil
}

// Options - значения для селекторов городов, типов и способов утилизации
func (uc *DatasetUseCase) Options() (*domain.FilterOptions, error) {
	records, err := uc.Snapshot()
	if err != nil {
		return nil, err
	}
	options := analytics.Options(records)
	return &options, nil
}

// Info - состояние датасета
func (uc *DatasetUseCase) Info() domain.DatasetInfo {
	info := uc.store.Info()
	if info.Source == "" {
		info.Source = uc.repo.Name()
	}
	return info
}

// Describe - состояние датасета вместе с текущим фильтром таблицы
func (uc *DatasetUseCase) Describe() dto.DatasetInfoResponse {
	resp := dto.DatasetInfoResponse{DatasetInfo: uc.Info()}
	if _, p, err := uc.Filtered(); err == nil && !p.IsEmpty() {
		resp.Filter = &p
	}
	return resp
}

func (uc *DatasetUseCase) Loaded() bool {
	return uc.store.Loaded()
}
