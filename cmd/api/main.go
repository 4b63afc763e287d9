package main

// @title Waste Analytics API
// @version 1.0.0
// @description Аналитика обращения с отходами по городам: обзор, кампании осведомлённости, стоимость, эффективность утилизации, полигоны, карта и таблица записей.
// @description
// @description Датасет загружается целиком при старте из одного источника (file, http, postgres, redis)
// @description и перезагружается через POST /api/v1/dataset/reload или событие в stream:dataset:reload.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/waste-analytics/internal/config"
	httpDelivery "github.com/waste-analytics/internal/delivery/http"
	"github.com/waste-analytics/internal/delivery/http/handler"
	"github.com/waste-analytics/internal/domain/repository"
	"github.com/waste-analytics/internal/infrastructure/httpsource"
	"github.com/waste-analytics/internal/pkg/logger"
	"github.com/waste-analytics/internal/repository/cache"
	"github.com/waste-analytics/internal/repository/file"
	"github.com/waste-analytics/internal/repository/postgres"
	redisRepo "github.com/waste-analytics/internal/repository/redis"
	"github.com/waste-analytics/internal/store"
	"github.com/waste-analytics/internal/usecase"
	"github.com/waste-analytics/internal/worker"
	"github.com/waste-analytics/internal/worker/dataset"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Waste Analytics")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("dataset_source", cfg.Dataset.Source),
		zap.Bool("worker_enabled", cfg.Worker.Enabled),
	)

	// 3. Connect to Redis (только если нужен источнику или воркеру)
	var redisClient *cache.Redis
	if cfg.NeedsRedis() {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Info("Redis connected")
	}

	// 4. Dataset source
	var db *postgres.DB
	var source repository.DatasetRepository

	switch cfg.Dataset.Source {
	case config.SourceFile:
		source = file.NewDatasetRepository(cfg.Dataset.Path, log)
	case config.SourceHTTP:
		source = httpsource.NewDatasetClient(&cfg.Dataset, log)
	case config.SourcePostgres:
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		log.Info("PostgreSQL connected")
		source = postgres.NewDatasetRepository(db, cfg.Dataset.Table)
	case config.SourceRedis:
		source = cache.NewDatasetRepository(cache.NewCacheRepository(redisClient), cfg.Dataset.RedisKey, log)
	}

	log.Info("Dataset source initialized", zap.String("source", source.Name()))

	// 5. Initialize Use Cases
	datasetUC := usecase.NewDatasetUseCase(store.New(), source, log)
	dashboardUC := usecase.NewDashboardUseCase(datasetUC, cfg.View, log)
	exportUC := usecase.NewExportUseCase(datasetUC, log)

	// Начальная загрузка: при ошибке сервис стартует, экраны отдают 503 до успешной перезагрузки
	loadCtx, loadCancel := context.WithTimeout(context.Background(), cfg.Dataset.RequestTimeout+5*time.Second)
	if err := datasetUC.Load(loadCtx); err != nil {
		log.Error("Initial dataset load failed, views disabled until reload", zap.Error(err))
	}
	loadCancel()

	// 6. Initialize HTTP Handlers
	datasetHandler := handler.NewDatasetHandler(datasetUC, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardUC, log)
	exportHandler := handler.NewExportHandler(exportUC, log)

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, datasetHandler, dashboardHandler, exportHandler)

	// 8. Reload worker
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	manager := worker.NewWorkerManager(log)
	if cfg.Worker.Enabled {
		streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
		manager.Register(dataset.NewReloadWorker(streamRepo, datasetUC, cfg.Worker.ConsumerGroup, log))
	}
	if err := manager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.Int("workers", manager.Len()),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := manager.Stop(ctx); err != nil {
		log.Error("Workers shutdown error", zap.Error(err))
	}
	workerCancel()

	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL", zap.Error(err))
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
