package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Dataset source kinds
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
)

type Config struct {
	Server   ServerConfig
	Dataset  DatasetConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Worker   WorkerConfig
	View     ViewConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatasetConfig struct {
	Source         string
	Path           string
	URL            string
	RedisKey       string
	Table          string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
}

type ViewConfig struct {
	TopCities        int
	TablePageSize    int
	MaxTablePageSize int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")

	v.SetDefault("DATASET_SOURCE", SourceFile)
	v.SetDefault("DATASET_PATH", "assets/data/data.json")
	v.SetDefault("DATASET_REDIS_KEY", "dataset:waste:records")
	v.SetDefault("DATASET_TABLE", "waste_records")
	v.SetDefault("DATASET_REQUEST_TIMEOUT", 30)

	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_ENABLED", false)
	v.SetDefault("WORKER_CONSUMER_GROUP", "dataset-reload-workers")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)

	v.SetDefault("VIEW_TOP_CITIES", 10)
	v.SetDefault("VIEW_TABLE_PAGE_SIZE", 25)
	v.SetDefault("VIEW_MAX_TABLE_PAGE_SIZE", 500)
}

// Load читает конфигурацию из .env (если есть) и переменных окружения
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile читает конфигурацию из указанного env-файла.
// Отсутствующий файл не ошибка: используются переменные окружения и значения по умолчанию.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Dataset: DatasetConfig{
			Source:         strings.ToLower(strings.TrimSpace(v.GetString("DATASET_SOURCE"))),
			Path:           v.GetString("DATASET_PATH"),
			URL:            v.GetString("DATASET_URL"),
			RedisKey:       v.GetString("DATASET_REDIS_KEY"),
			Table:          v.GetString("DATASET_TABLE"),
			RequestTimeout: time.Duration(v.GetInt("DATASET_REQUEST_TIMEOUT")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
		},
		View: ViewConfig{
			TopCities:        v.GetInt("VIEW_TOP_CITIES"),
			TablePageSize:    v.GetInt("VIEW_TABLE_PAGE_SIZE"),
			MaxTablePageSize: v.GetInt("VIEW_MAX_TABLE_PAGE_SIZE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность настроек источника датасета
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceFile:
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH is required for %q source", SourceFile)
		}
	case SourceHTTP:
		if c.Dataset.URL == "" {
			return fmt.Errorf("DATASET_URL is required for %q source", SourceHTTP)
		}
	case SourcePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for %q source", SourcePostgres)
		}
		if c.Dataset.Table == "" {
			return fmt.Errorf("DATASET_TABLE is required for %q source", SourcePostgres)
		}
	case SourceRedis:
		if c.Dataset.RedisKey == "" {
			return fmt.Errorf("DATASET_REDIS_KEY is required for %q source", SourceRedis)
		}
	default:
		return fmt.Errorf("unknown dataset source %q", c.Dataset.Source)
	}

	if c.View.TablePageSize <= 0 || c.View.MaxTablePageSize < c.View.TablePageSize {
		return fmt.Errorf("invalid table page sizes: default %d, max %d",
			c.View.TablePageSize, c.View.MaxTablePageSize)
	}
	if c.View.TopCities <= 0 {
		return fmt.Errorf("VIEW_TOP_CITIES must be positive")
	}

	return nil
}

// NeedsRedis - нужен ли Redis (источник данных или воркер перезагрузки)
func (c *Config) NeedsRedis() bool {
	return c.Dataset.Source == SourceRedis || c.Worker.Enabled
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}

// DSN - строка подключения в формате key=value (pgx и lib/pq понимают оба)
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
