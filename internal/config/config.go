package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"docmanager-backend/internal/infrastructure/database"
	"docmanager-backend/internal/shared"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Queue    QueueConfig
}

type AppConfig struct {
	Name           string
	Environment    string // development, staging, production
	Port           string
	Version        string
	LogLevel       string
	Seed           bool // seed sample authors/documents on startup
	WorkerEmbedded bool // run the queue consumers inside the API process
}

// DatabaseConfig chọn store driver và connection settings cho PostgreSQL
type DatabaseConfig struct {
	Driver      string // postgres, memory
	AutoMigrate bool

	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxConns       int
	MinConns       int
	MaxRetries     int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration
}

// Pool builds the connection settings for database.NewPostgresDB; lifetimes are fixed
func (d DatabaseConfig) Pool() *database.DBConfig {
	return &database.DBConfig{
		Host:              d.Host,
		Port:              d.Port,
		Username:          d.User,
		Password:          d.Password,
		DBName:            d.Name,
		SSLMode:           d.SSLMode,
		MaxConns:          int32(d.MaxConns),
		MinConns:          int32(d.MinConns),
		MaxConnLifetime:   5 * time.Minute,
		MaxConnIdleTime:   time.Minute,
		HealthCheckPeriod: time.Minute,
		MaxRetries:        d.MaxRetries,
		RetryDelay:        d.RetryDelay,
		ConnectTimeout:    d.ConnectTimeout,
	}
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// JWTConfig - Secret rỗng nghĩa là không bật auth cho các route xóa bất đồng bộ
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// QueueConfig describes the broker topology of the cascade-delete subsystem.
//
// The exchange is shared by both queues; each queue is bound under its own
// routing key. With asynq the binding is expressed as the task type name.
type QueueConfig struct {
	Exchange           string
	AuthorQueue        string
	AuthorRoutingKey   string
	DocumentQueue      string
	DocumentRoutingKey string
	Concurrency        int
	FailurePolicy      string // drop, retry
	MaxRetry           int    // only used by the retry policy
	TaskTimeoutSeconds int
}

// AuthorTaskType is the task type published for delete-author requests
func (q QueueConfig) AuthorTaskType() string {
	return q.Exchange + ":" + q.AuthorRoutingKey
}

// DocumentTaskType is the task type published for delete-document requests
func (q QueueConfig) DocumentTaskType() string {
	return q.Exchange + ":" + q.DocumentRoutingKey
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Document Management API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "8080"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			Seed:           getEnvBool("APP_SEED", false),
			WorkerEmbedded: getEnvBool("WORKER_EMBEDDED", false),
		},
		Database: DatabaseConfig{
			Driver:         strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
			AutoMigrate:    getEnvBool("DB_AUTO_MIGRATE", true),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			Name:           getEnv("DB_NAME", "documentmanagement"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       getEnvInt("DB_MAX_CONNECTIONS", 25),
			MinConns:       getEnvInt("DB_MIN_CONNECTIONS", 5),
			MaxRetries:     getEnvInt("DB_MAX_RETRIES", 5),
			RetryDelay:     getEnvDuration("DB_RETRY_DELAY", time.Second),
			ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", ""),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60),
		},
		Queue: QueueConfig{
			Exchange:           getEnv("QUEUE_EXCHANGE", shared.DefaultExchange),
			AuthorQueue:        getEnv("QUEUE_AUTHOR_NAME", shared.DefaultAuthorQueue),
			AuthorRoutingKey:   getEnv("QUEUE_AUTHOR_ROUTING_KEY", shared.DefaultAuthorRoutingKey),
			DocumentQueue:      getEnv("QUEUE_DOCUMENT_NAME", shared.DefaultDocumentQueue),
			DocumentRoutingKey: getEnv("QUEUE_DOCUMENT_ROUTING_KEY", shared.DefaultDocumentRoutingKey),
			Concurrency:        getEnvInt("QUEUE_CONCURRENCY", 1),
			FailurePolicy:      strings.ToLower(getEnv("CASCADE_FAILURE_POLICY", shared.FailurePolicyDrop)),
			MaxRetry:           getEnvInt("CASCADE_MAX_RETRY", 5),
			TaskTimeoutSeconds: getEnvInt("QUEUE_TASK_TIMEOUT_SECONDS", 120),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Database.Driver)
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid DB_PORT %d", c.Database.Port)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNECTIONS must not exceed DB_MAX_CONNECTIONS")
	}

	switch c.Queue.FailurePolicy {
	case shared.FailurePolicyDrop, shared.FailurePolicyRetry:
	default:
		return fmt.Errorf("unsupported CASCADE_FAILURE_POLICY %q", c.Queue.FailurePolicy)
	}

	if c.Queue.AuthorQueue == "" || c.Queue.DocumentQueue == "" {
		return fmt.Errorf("queue names must not be empty")
	}
	if c.Queue.AuthorTaskType() == c.Queue.DocumentTaskType() {
		return fmt.Errorf("author and document routing keys must differ")
	}
	if c.Queue.Concurrency < 1 {
		c.Queue.Concurrency = 1
	}
	if c.Queue.MaxRetry < 0 {
		c.Queue.MaxRetry = 0
	}

	// Production environment phải có DB password và JWT secret thật
	if c.App.Environment == "production" {
		if c.Database.Driver == DriverPostgres && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be changed in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
