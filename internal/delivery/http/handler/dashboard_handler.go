package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/waste-analytics/internal/pkg/utils"
	"github.com/waste-analytics/internal/pkg/validator"
	"github.com/waste-analytics/internal/usecase"
	"github.com/waste-analytics/internal/usecase/dto"
	"go.uber.org/zap"
)

// DashboardHandler - данные экранов дашборда и таблица записей
type DashboardHandler struct {
	dashboardUC *usecase.DashboardUseCase
	logger      *zap.Logger
}

// NewDashboardHandler - создание нового DashboardHandler
func NewDashboardHandler(dashboardUC *usecase.DashboardUseCase, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: dashboardUC,
		logger:      logger,
	}
}

// Overview godoc
// @Summary Обзор
// @Description Топ городов по среднему уровню переработки и суммарный объём отходов по типам
// @Tags Views
// @Produce json
// @Param top query int false "Количество городов в рейтинге" default(10)
// @Success 200 {object} utils.SuccessResponse{data=analytics.OverviewOutput}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/views/overview [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	req := dto.OverviewRequest{Top: c.QueryInt("top", 0)}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	result, err := h.dashboardUC.Overview(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, timing(start))
}

// Awareness godoc
// @Summary Кампании и переработка
// @Description Средние показатели кампаний и переработки по городам с гистограммами
// @Tags Views
// @Produce json
// @Param cities query []string false "Города (пусто - все)" collectionFormat(multi)
// @Param rate_bin_width query number false "Ширина корзины гистограммы переработки" default(10)
// @Param campaign_bin_width query number false "Ширина корзины гистограммы кампаний" default(5)
// @Success 200 {object} utils.SuccessResponse{data=analytics.AwarenessOutput}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/views/awareness [get]
func (h *DashboardHandler) Awareness(c *fiber.Ctx) error {
	rateWidth, err := queryFloat(c, "rate_bin_width")
	if err != nil {
		return utils.SendError(c, err)
	}
	campaignWidth, err := queryFloat(c, "campaign_bin_width")
	if err != nil {
		return utils.SendError(c, err)
	}

	req := dto.AwarenessRequest{
		Cities:           queryList(c, "cities"),
		RateBinWidth:     rateWidth,
		CampaignBinWidth: campaignWidth,
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	result, err := h.dashboardUC.Awareness(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, timing(start))
}

// Cost godoc
// @Summary Стоимость
// @Description Средняя стоимость по городам (по убыванию) и средняя переработка по типам отходов
// @Tags Views
// @Produce json
// @Param cities query []string false "Города (пусто - все)" collectionFormat(multi)
// @Param waste_types query []string false "Типы отходов (пусто - все)" collectionFormat(multi)
// @Success 200 {object} utils.SuccessResponse{data=analytics.CostOutput}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/views/cost [get]
func (h *DashboardHandler) Cost(c *fiber.Ctx) error {
	req := dto.CostRequest{
		Cities:     queryList(c, "cities"),
		WasteTypes: queryList(c, "waste_types"),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	result, err := h.dashboardUC.Cost(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, timing(start))
}

// Efficiency godoc
// @Summary Эффективность
// @Description Средний MES по каждой паре тип отходов / способ утилизации; отсутствующие пары равны 0
// @Tags Views
// @Produce json
// @Param waste_types query []string false "Типы отходов (пусто - все)" collectionFormat(multi)
// @Param methods query []string false "Способы утилизации (пусто - все)" collectionFormat(multi)
// @Success 200 {object} utils.SuccessResponse{data=analytics.EfficiencyOutput}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/views/efficiency [get]
func (h *DashboardHandler) Efficiency(c *fiber.Ctx) error {
	req := dto.EfficiencyRequest{
		WasteTypes: queryList(c, "waste_types"),
		Methods:    queryList(c, "methods"),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	result, err := h.dashboardUC.Efficiency(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, timing(start))
}

// Landfill godoc
// @Summary Полигоны
// @Description Плотность населения и ёмкость полигонов по первой записи каждого города
// @Tags Views
// @Produce json
// @Param cities query []string false "Города (пусто - все)" collectionFormat(multi)
// @Param show_all query bool false "Игнорировать выбор городов" default(false)
// @Success 200 {object} utils.SuccessResponse{data=analytics.LandfillOutput}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/views/landfill [get]
func (h *DashboardHandler) Landfill(c *fiber.Ctx) error {
	req := dto.LandfillRequest{
		Cities:  queryList(c, "cities"),
		ShowAll: c.QueryBool("show_all", false),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	result, err := h.dashboardUC.Landfill(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, timing(start))
}

// Geographic godoc
// @Summary Карта
// @Description Маркеры городов с суммарным объёмом отходов; города без координат пропускаются
// @Tags Views
// @Produce json
// @Param cities query []string false "Города (пусто - все)" collectionFormat(multi)
// @Param waste_type query string false "Тип отходов или All" default(All)
// @Success 200 {object} utils.SuccessResponse{data=analytics.GeographicOutput}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/views/geographic [get]
func (h *DashboardHandler) Geographic(c *fiber.Ctx) error {
	req := dto.GeographicRequest{
		Cities:    queryList(c, "cities"),
		WasteType: c.Query("waste_type", "All"),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	result, err := h.dashboardUC.Geographic(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, timing(start))
}

// Records godoc
// @Summary Таблица записей
// @Description Записи в исходном порядке с фильтрами и поиском по всем полям без учёта регистра
// @Tags Records
// @Produce json
// @Param q query string false "Поиск по всем полям"
// @Param cities query []string false "Города" collectionFormat(multi)
// @Param waste_types query []string false "Типы отходов" collectionFormat(multi)
// @Param methods query []string false "Способы утилизации" collectionFormat(multi)
// @Param page query int false "Страница" default(1)
// @Param limit query int false "Строк на странице" default(25)
// @Success 200 {object} utils.SuccessResponse{data=dto.RecordsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/records [get]
func (h *DashboardHandler) Records(c *fiber.Ctx) error {
	req := parseRecordsRequest(c)
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.dashboardUC.Records(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    result.Total,
		Filtered: result.Filtered,
		Page:     result.Page,
		Limit:    result.Limit,
	})
}

func parseRecordsRequest(c *fiber.Ctx) dto.RecordsRequest {
	return dto.RecordsRequest{
		Query:      c.Query("q"),
		Cities:     queryList(c, "cities"),
		WasteTypes: queryList(c, "waste_types"),
		Methods:    queryList(c, "methods"),
		Page:       c.QueryInt("page", 0),
		Limit:      c.QueryInt("limit", 0),
	}
}

func timing(start time.Time) *utils.Meta {
	return &utils.Meta{TimeMSec: float64(time.Since(start).Microseconds()) / 1000}
}
