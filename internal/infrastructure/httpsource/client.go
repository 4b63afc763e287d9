package httpsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/waste-analytics/internal/config"
	"github.com/waste-analytics/internal/domain"
	"github.com/waste-analytics/internal/domain/repository"
	"go.uber.org/zap"
)

// maxBodySize ограничивает размер документа датасета
const maxBodySize = 64 << 20

type client struct {
	httpClient *http.Client
	url        string
	logger     *zap.Logger
}

// NewDatasetClient создает источник датасета, читающий JSON-документ по HTTP
func NewDatasetClient(cfg *config.DatasetConfig, logger *zap.Logger) repository.DatasetRepository {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &client{
		httpClient: &http.Client{Timeout: timeout},
		url:        cfg.URL,
		logger:     logger,
	}
}

func (c *client) Name() string {
	return config.SourceHTTP
}

// Fetch выполняет один GET без повторов
func (c *client) Fetch(ctx context.Context) ([]domain.Record, error) {
	c.logger.Debug("Fetching dataset", zap.String("url", c.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, domain.NewLoadError(c.Name(), fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.String("url", c.url), zap.Error(err))
		return nil, domain.NewLoadError(c.Name(), fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("Dataset source returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, domain.NewLoadError(c.Name(), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, domain.NewLoadError(c.Name(), fmt.Errorf("failed to read response: %w", err))
	}

	records, err := domain.DecodeRecords(data)
	if err != nil {
		c.logger.Error("Failed to decode dataset", zap.Error(err))
		return nil, domain.NewLoadError(c.Name(), err)
	}

	c.logger.Debug("Dataset fetched", zap.Int("records", len(records)))
	return records, nil
}
