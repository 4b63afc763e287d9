package usecase

import (
	"context"
	"errors"
	"math"

	"github.com/waste-analytics/internal/analytics"
	"github.com/waste-analytics/internal/config"
	apperrors "github.com/waste-analytics/internal/pkg/errors"
	"github.com/waste-analytics/internal/usecase/dto"
	"go.uber.org/zap"
)

// DashboardUseCase строит данные для экранов дашборда.
// Каждый вызов пересчитывает агрегаты по текущему снимку датасета.
type DashboardUseCase struct {
	dataset *DatasetUseCase
	cfg     config.ViewConfig
	logger  *zap.Logger
}

// NewDashboardUseCase создает новый экземпляр DashboardUseCase
func NewDashboardUseCase(dataset *DatasetUseCase, cfg config.ViewConfig, logger *zap.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		dataset: dataset,
		cfg:     cfg,
		logger:  logger,
	}
}

func (uc *DashboardUseCase) Overview(ctx context.Context, req dto.OverviewRequest) (*analytics.OverviewOutput, error) {
	records, err := uc.dataset.Snapshot()
	if err != nil {
		return nil, err
	}

	top := req.Top
	if top == 0 {
		top = uc.cfg.TopCities
	}

	out := analytics.Overview(records, analytics.OverviewParams{Top: top})
	return &out, nil
}

func (uc *DashboardUseCase) Awareness(ctx context.Context, req dto.AwarenessRequest) (*analytics.AwarenessOutput, error) {
	if !validBinWidth(req.RateBinWidth) || !validBinWidth(req.CampaignBinWidth) {
		return nil, apperrors.ErrInvalidBinWidth.WithDetails(map[string]interface{}{
			"rate_bin_width":     req.RateBinWidth,
			"campaign_bin_width": req.CampaignBinWidth,
		})
	}

	records, err := uc.dataset.Snapshot()
	if err != nil {
		return nil, err
	}

	out, err := analytics.Awareness(records, analytics.AwarenessParams{
		Cities:           req.Cities,
		RateBinWidth:     req.RateBinWidth,
		CampaignBinWidth: req.CampaignBinWidth,
	})
	if errors.Is(err, analytics.ErrBinWidth) {
		return nil, apperrors.ErrInvalidBinWidth.WithDetails(map[string]interface{}{
			"reason":   err.Error(),
			"max_bins": analytics.MaxHistogramBins,
		})
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *DashboardUseCase) Cost(ctx context.Context, req dto.CostRequest) (*analytics.CostOutput, error) {
	records, err := uc.dataset.Snapshot()
	if err != nil {
		return nil, err
	}

	out := analytics.Cost(records, analytics.CostParams{
		Cities:     req.Cities,
		WasteTypes: req.WasteTypes,
	})
	return &out, nil
}

func (uc *DashboardUseCase) Efficiency(ctx context.Context, req dto.EfficiencyRequest) (*analytics.EfficiencyOutput, error) {
	records, err := uc.dataset.Snapshot()
	if err != nil {
		return nil, err
	}

	out := analytics.Efficiency(records, analytics.EfficiencyParams{
		WasteTypes: req.WasteTypes,
		Methods:    req.Methods,
	})
	return &out, nil
}

func (uc *DashboardUseCase) Landfill(ctx context.Context, req dto.LandfillRequest) (*analytics.LandfillOutput, error) {
	records, err := uc.dataset.Snapshot()
	if err != nil {
		return nil, err
	}

	out := analytics.Landfill(records, analytics.LandfillParams{
		Cities:  req.Cities,
		ShowAll: req.ShowAll,
	})
	return &out, nil
}

func (uc *DashboardUseCase) Geographic(ctx context.Context, req dto.GeographicRequest) (*analytics.GeographicOutput, error) {
	records, err := uc.dataset.Snapshot()
	if err != nil {
		return nil, err
	}

	out := analytics.Geographic(records, analytics.GeographicParams{
		Cities:    req.Cities,
		WasteType: req.WasteType,
	})

	uc.logger.Debug("Geographic view built",
		zap.Int("markers", len(out.Markers)),
		zap.Int("cities_selected", len(req.Cities)))

	return &out, nil
}

// Records отдаёт страницу таблицы; размер страницы ограничен настройками
func (uc *DashboardUseCase) Records(ctx context.Context, req dto.RecordsRequest) (*dto.RecordsResponse, error) {
	sel, err := uc.dataset.Filter(req.Predicates())
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit == 0 {
		limit = uc.cfg.TablePageSize
	}
	if limit > uc.cfg.MaxTablePageSize {
		limit = uc.cfg.MaxTablePageSize
	}

	table := analytics.Table(sel.Records, analytics.TableParams{Page: req.Page, Limit: limit})

	totalPages := 0
	if limit > 0 {
		totalPages = (table.Filtered + limit - 1) / limit
	}

	return &dto.RecordsResponse{
		Columns:    table.Columns,
		Rows:       table.Rows,
		Total:      sel.Total,
		Filtered:   table.Filtered,
		Page:       table.Page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func validBinWidth(w float64) bool {
	return w >= 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}
