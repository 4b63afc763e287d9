package worker

import (
	"context"
)

// Worker - фоновый процесс, которым управляет WorkerManager
type Worker interface {
	// Start блокируется до Stop или отмены ctx
	Start(ctx context.Context) error

	// Stop сигнализирует о завершении; безопасен для повторного вызова
	Stop() error

	Name() string
}
