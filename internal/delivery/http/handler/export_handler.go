package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/waste-analytics/internal/pkg/utils"
	"github.com/waste-analytics/internal/pkg/validator"
	"github.com/waste-analytics/internal/usecase"
	"go.uber.org/zap"
)

// ExportHandler - выгрузка записей в Excel
type ExportHandler struct {
	exportUC *usecase.ExportUseCase
	logger   *zap.Logger
}

// NewExportHandler - создание нового ExportHandler
func NewExportHandler(exportUC *usecase.ExportUseCase, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		exportUC: exportUC,
		logger:   logger,
	}
}

// ExportRecords godoc
// @Summary Выгрузка записей в .xlsx
// @Description Те же фильтры, что у таблицы; выгружаются все совпавшие записи без пейджинга
// @Tags Records
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param q query string false "Поиск по всем полям"
// @Param cities query []string false "Города" collectionFormat(multi)
// @Param waste_types query []string false "Типы отходов" collectionFormat(multi)
// @Param methods query []string false "Способы утилизации" collectionFormat(multi)
// @Success 200 {file} file
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/records/export [get]
func (h *ExportHandler) ExportRecords(c *fiber.Ctx) error {
	req := parseRecordsRequest(c)
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	file, err := h.exportUC.Export(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Set("X-Total-Rows", strconv.Itoa(file.Rows))
	return c.Send(file.Data)
}
