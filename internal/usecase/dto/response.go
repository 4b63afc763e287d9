package dto

import (
	"time"

	"github.com/waste-analytics/internal/analytics"
	"github.com/waste-analytics/internal/domain"
)

// HealthResponse - состояние сервиса
type HealthResponse struct {
	Status        string    `json:"status"`
	DatasetLoaded bool      `json:"dataset_loaded"`
	Time          time.Time `json:"time"`
}

// DatasetInfoResponse - состояние датасета и фильтр последнего запроса таблицы
type DatasetInfoResponse struct {
	domain.DatasetInfo
	Filter *analytics.PredicateSet `json:"filter,omitempty"`
}

// ReloadResponse - результат перезагрузки датасета
type ReloadResponse struct {
	Source   string    `json:"source"`
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
}

// RecordsResponse - страница таблицы данных
type RecordsResponse struct {
	Columns    []analytics.Column `json:"columns"`
	Rows       []domain.Record    `json:"rows"`
	Total      int                `json:"total"`
	Filtered   int                `json:"filtered"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// ExportFile - готовый файл выгрузки
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
}
