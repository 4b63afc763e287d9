package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamDatasetReload = "stream:dataset:reload"
	StreamDatasetLoaded = "stream:dataset:loaded"
)

// DatasetReloadEvent - входящее событие на перезагрузку датасета
type DatasetReloadEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Reason      string    `json:"reason,omitempty"`
	RequestedBy string    `json:"requested_by,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// Validate проверяет обязательные поля события
func (e *DatasetReloadEvent) Validate() bool {
	return e.EventID != uuid.Nil
}

// DatasetLoadedEvent - результат перезагрузки
type DatasetLoadedEvent struct {
	EventID  uuid.UUID `json:"event_id"`
	Source   string    `json:"source"`
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
	Error    string    `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
