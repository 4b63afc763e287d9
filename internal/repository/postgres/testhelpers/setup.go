package testhelpers

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/waste-analytics/internal/config"
)

const (
	connectAttempts = 3
	firstRetryDelay = 200 * time.Millisecond
)

// TestDB - подключение к тестовой базе
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// testDatabaseConfig читает TEST_DB_* с дефолтами под docker-compose для тестов
func testDatabaseConfig() config.DatabaseConfig {
	port, err := strconv.Atoi(getEnv("TEST_DB_PORT", "5433"))
	if err != nil {
		port = 5433
	}
	return config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		DBName:   getEnv("TEST_DB_NAME", "waste_analytics_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}
}

// SetupTestDB подключается к тестовой базе через lib/pq.
// Если база недоступна, тест пропускается.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	cfg := testDatabaseConfig()

	var db *sqlx.DB
	var err error
	delay := firstRetryDelay
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = sqlx.Connect("postgres", cfg.DSN())
		if err == nil {
			break
		}
		if attempt < connectAttempts {
			t.Logf("Database not ready (attempt %d/%d), waiting %v", attempt, connectAttempts, delay)
			time.Sleep(delay)
			delay *= 2
		}
	}
	if err != nil {
		t.Skipf("PostgreSQL %s:%d not available for integration tests: %v", cfg.Host, cfg.Port, err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}

	return &TestDB{DB: db, Logger: logger}
}

func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		_ = tdb.DB.Close()
	}
}

// Cleanup очищает waste_records; отсутствие таблицы не ошибка
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	var exists bool
	if err := tdb.DB.GetContext(ctx, &exists, "SELECT to_regclass('waste_records') IS NOT NULL"); err != nil {
		return err
	}
	if !exists {
		return nil
	}
	_, err := tdb.DB.ExecContext(ctx, "TRUNCATE TABLE waste_records RESTART IDENTITY")
	return err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
