package dto

import "github.com/waste-analytics/internal/analytics"

// OverviewRequest - параметры обзорного экрана
type OverviewRequest struct {
	Top int `json:"top" validate:"omitempty,min=1,max=100"`
}

// AwarenessRequest - города и ширина корзин гистограмм (0 - по умолчанию)
type AwarenessRequest struct {
	Cities           []string `json:"cities,omitempty" validate:"omitempty,dive,required"`
	RateBinWidth     float64  `json:"rate_bin_width"`
	CampaignBinWidth float64  `json:"campaign_bin_width"`
}

// CostRequest - выбор городов и типов отходов
type CostRequest struct {
	Cities     []string `json:"cities,omitempty" validate:"omitempty,dive,required"`
	WasteTypes []string `json:"waste_types,omitempty" validate:"omitempty,dive,required"`
}

// EfficiencyRequest - выбор типов отходов и способов утилизации
type EfficiencyRequest struct {
	WasteTypes []string `json:"waste_types,omitempty" validate:"omitempty,dive,required"`
	Methods    []string `json:"methods,omitempty" validate:"omitempty,dive,required"`
}

// LandfillRequest - выбор городов; ShowAll отменяет выбор
type LandfillRequest struct {
	Cities  []string `json:"cities,omitempty" validate:"omitempty,dive,required"`
	ShowAll bool     `json:"show_all"`
}

// GeographicRequest - выбор городов и один тип отходов ("All" - все)
type GeographicRequest struct {
	Cities    []string `json:"cities,omitempty" validate:"omitempty,dive,required"`
	WasteType string   `json:"waste_type" validate:"omitempty,max=100"`
}

// RecordsRequest - фильтры таблицы данных, поиск и страница
type RecordsRequest struct {
	Query      string   `json:"q" validate:"omitempty,max=200"`
	Cities     []string `json:"cities,omitempty" validate:"omitempty,dive,required"`
	WasteTypes []string `json:"waste_types,omitempty" validate:"omitempty,dive,required"`
	Methods    []string `json:"methods,omitempty" validate:"omitempty,dive,required"`
	Page       int      `json:"page" validate:"omitempty,min=1"`
	Limit      int      `json:"limit" validate:"omitempty,min=1,max=1000"`
}

// Predicates собирает фильтр таблицы
func (r RecordsRequest) Predicates() analytics.PredicateSet {
	return analytics.PredicateSet{
		Cities:          r.Cities,
		WasteTypes:      r.WasteTypes,
		DisposalMethods: r.Methods,
		SearchText:      r.Query,
	}
}

// ReloadRequest - запрос на перезагрузку датасета из источника
type ReloadRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=200"`
}
