package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/waste-analytics/internal/domain"
	"github.com/waste-analytics/internal/domain/repository"
	"github.com/waste-analytics/internal/usecase/dto"
	"github.com/waste-analytics/internal/worker"
	"go.uber.org/zap"
)

const (
	workerName = "dataset-reload"

	// consumeRetryDelay - пауза перед повторной подпиской на стрим
	consumeRetryDelay = 5 * time.Second
)

// DatasetReloader - то, что воркер умеет делать с датасетом
type DatasetReloader interface {
	Reload(ctx context.Context, reason string) (*dto.ReloadResponse, error)
	Info() domain.DatasetInfo
}

// ReloadWorker слушает stream:dataset:reload и перечитывает источник датасета.
// Результат каждой перезагрузки публикуется в stream:dataset:loaded.
type ReloadWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	dataset    DatasetReloader
}

// NewReloadWorker создает воркер перезагрузки датасета
func NewReloadWorker(
	streamRepo repository.StreamRepository,
	dataset DatasetReloader,
	consumerGroup string,
	logger *zap.Logger,
) *ReloadWorker {
	return &ReloadWorker{
		BaseWorker: worker.NewBaseWorker(workerName, consumerGroup, logger),
		streamRepo: streamRepo,
		dataset:    dataset,
	}
}

// Start блокируется до Stop или отмены ctx
func (w *ReloadWorker) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := w.Logger()

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamDatasetReload, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}

	messages, err := w.subscribe(ctx)
	if err != nil {
		return err
	}
	if messages == nil {
		logger.Info("Dataset reload worker stopped before subscribing")
		return nil
	}

	logger.Info("Dataset reload worker started",
		zap.String("stream", domain.StreamDatasetReload),
		zap.String("group", w.ConsumerGroup()),
		zap.String("consumer", w.ConsumerName()))

	for {
		select {
		case <-w.StopChan():
			logger.Info("Dataset reload worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Dataset reload worker context cancelled")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				logger.Info("Reload stream closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// subscribe повторяет ConsumeStream до успеха; nil-канал без ошибки означает Stop
func (w *ReloadWorker) subscribe(ctx context.Context) (<-chan domain.StreamMessage, error) {
	for {
		messages, err := w.streamRepo.ConsumeStream(ctx, domain.StreamDatasetReload, w.ConsumerGroup(), w.ConsumerName())
		if err == nil {
			return messages, nil
		}

		w.Logger().Warn("Failed to subscribe to reload stream, retrying",
			zap.Duration("retry_in", consumeRetryDelay),
			zap.Error(err))

		if !w.Pause(ctx, consumeRetryDelay) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, nil
		}
	}
}

// handleMessage всегда подтверждает сообщение: неудачная перезагрузка
// сообщается через loaded-событие, а не повторной доставкой
func (w *ReloadWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))
	defer w.ack(ctx, msg.ID)

	var event domain.DatasetReloadEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Skipping malformed reload event", zap.Error(err))
		return
	}
	if !event.Validate() {
		logger.Warn("Skipping reload event without event_id")
		return
	}

	reason := event.Reason
	if reason == "" {
		reason = "stream"
	}

	loaded := &domain.DatasetLoadedEvent{EventID: event.EventID}

	resp, err := w.dataset.Reload(ctx, reason)
	if err != nil {
		info := w.dataset.Info()
		loaded.Source = info.Source
		loaded.Records = info.Records
		loaded.LoadedAt = info.LoadedAt
		loaded.Error = err.Error()
	} else {
		loaded.Source = resp.Source
		loaded.Records = resp.Records
		loaded.LoadedAt = resp.LoadedAt
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamDatasetLoaded, loaded); err != nil {
		logger.Error("Failed to publish dataset loaded event",
			zap.String("event_id", event.EventID.String()),
			zap.Error(err))
		return
	}

	logger.Info("Reload event processed",
		zap.String("event_id", event.EventID.String()),
		zap.String("requested_by", event.RequestedBy),
		zap.Int("records", loaded.Records),
		zap.Bool("failed", loaded.Error != ""))
}

func (w *ReloadWorker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamDatasetReload, w.ConsumerGroup(), id); err != nil {
		w.Logger().Error("Failed to ack reload message",
			zap.String("message_id", id),
			zap.Error(err))
	}
}
