package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/waste-analytics/internal/analytics"
	"github.com/waste-analytics/internal/domain"
	apperrors "github.com/waste-analytics/internal/pkg/errors"
	"github.com/waste-analytics/internal/usecase/dto"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	exportSheet       = "Records"
	exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportUseCase выгружает отфильтрованные строки таблицы в .xlsx
type ExportUseCase struct {
	dataset *DatasetUseCase
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportUseCase создает новый экземпляр ExportUseCase
func NewExportUseCase(dataset *DatasetUseCase, logger *zap.Logger) *ExportUseCase {
	return &ExportUseCase{
		dataset: dataset,
		logger:  logger,
		now:     time.Now,
	}
}

// Export строит книгу с листом Records: строка заголовков и по строке на запись.
// Пейджинг запроса игнорируется, выгружаются все совпавшие записи.
func (uc *ExportUseCase) Export(ctx context.Context, req dto.RecordsRequest) (*dto.ExportFile, error) {
	all, err := uc.dataset.Snapshot()
	if err != nil {
		return nil, err
	}
	rows := analytics.Apply(all, req.Predicates())

	data, err := uc.buildWorkbook(rows)
	if err != nil {
		uc.logger.Error("Failed to build export workbook", zap.Int("rows", len(rows)), zap.Error(err))
		return nil, apperrors.ErrExportFailed.WithDetails(map[string]interface{}{"reason": err.Error()})
	}

	uc.logger.Info("Records exported", zap.Int("rows", len(rows)), zap.Int("bytes", len(data)))

	return &dto.ExportFile{
		Name:        fmt.Sprintf("waste-records-%s.xlsx", uc.now().UTC().Format("20060102-150405")),
		ContentType: exportContentType,
		Data:        data,
		Rows:        len(rows),
	}, nil
}

func (uc *ExportUseCase) buildWorkbook(records []domain.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, col := range analytics.TableColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, col.Label); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(analytics.TableColumns), 1)
	if err := f.SetCellStyle(exportSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, r := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			r.City,
			r.WasteType,
			r.WasteGenerated,
			r.RecyclingRate,
			r.MES,
			r.DisposalMethod,
			r.CostOfWasteManagement,
			r.AwarenessCampaignsCount,
			r.PopulationDensity,
			r.LandfillCapacity,
			r.Year,
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
