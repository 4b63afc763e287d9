package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	apperrors "github.com/waste-analytics/internal/pkg/errors"
	"github.com/waste-analytics/internal/pkg/utils"
	"github.com/waste-analytics/internal/pkg/validator"
	"github.com/waste-analytics/internal/usecase"
	"github.com/waste-analytics/internal/usecase/dto"
	"go.uber.org/zap"
)

// DatasetHandler - состояние датасета, сводка, значения фильтров и перезагрузка
type DatasetHandler struct {
	datasetUC *usecase.DatasetUseCase
	logger    *zap.Logger
}

// NewDatasetHandler - создание нового DatasetHandler
func NewDatasetHandler(datasetUC *usecase.DatasetUseCase, logger *zap.Logger) *DatasetHandler {
	return &DatasetHandler{
		datasetUC: datasetUC,
		logger:    logger,
	}
}

// Health godoc
// @Summary Проверка состояния сервиса
// @Description Сервис жив, даже если датасет не загружен; флаг dataset_loaded показывает доступность представлений
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *DatasetHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:        "healthy",
		DatasetLoaded: h.datasetUC.Loaded(),
		Time:          time.Now().UTC(),
	})
}

// GetInfo godoc
// @Summary Информация о датасете
// @Description Источник, количество записей и время последней успешной загрузки
// @Tags Dataset
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.DatasetInfoResponse}
// @Router /api/v1/dataset [get]
func (h *DatasetHandler) GetInfo(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.datasetUC.Describe(), nil)
}

// GetSummary godoc
// @Summary Сводные показатели
// @Description Количество городов, общий объём отходов, средний уровень переработки и средний MES
// @Tags Dataset
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.DatasetSummary}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/dataset/summary [get]
func (h *DatasetHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.datasetUC.Summary()
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, summary, nil)
}

// GetOptions godoc
// @Summary Значения фильтров
// @Description Отсортированные уникальные города, типы отходов и способы утилизации
// @Tags Dataset
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.FilterOptions}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/dataset/options [get]
func (h *DatasetHandler) GetOptions(c *fiber.Ctx) error {
	options, err := h.datasetUC.Options()
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, options, nil)
}

// Reload godoc
// @Summary Перезагрузка датасета
// @Description Повторно читает источник; при ошибке остаётся прежний набор записей
// @Tags Dataset
// @Accept json
// @Produce json
// @Param request body dto.ReloadRequest false "Причина перезагрузки"
// @Success 200 {object} utils.SuccessResponse{data=dto.ReloadResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/dataset/reload [post]
func (h *DatasetHandler) Reload(c *fiber.Ctx) error {
	var req dto.ReloadRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest)
		}
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}
	if req.Reason == "" {
		req.Reason = "api"
	}

	result, err := h.datasetUC.Reload(c.UserContext(), req.Reason)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}
