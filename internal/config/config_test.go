package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "drop", cfg.Queue.FailurePolicy)
	assert.Equal(t, "document-management:author.delete", cfg.Queue.AuthorTaskType())
	assert.Equal(t, "document-management:document.delete", cfg.Queue.DocumentTaskType())
	assert.Equal(t, "author-delete", cfg.Queue.AuthorQueue)
	assert.Equal(t, "document-delete", cfg.Queue.DocumentQueue)
	assert.Equal(t, 1, cfg.Queue.Concurrency)
	assert.Empty(t, cfg.JWT.Secret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("CASCADE_FAILURE_POLICY", "RETRY")
	t.Setenv("CASCADE_MAX_RETRY", "3")
	t.Setenv("QUEUE_EXCHANGE", "docs")
	t.Setenv("QUEUE_AUTHOR_ROUTING_KEY", "authors.remove")
	t.Setenv("QUEUE_CONCURRENCY", "0")
	t.Setenv("WORKER_EMBEDDED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "retry", cfg.Queue.FailurePolicy)
	assert.Equal(t, 3, cfg.Queue.MaxRetry)
	assert.Equal(t, "docs:authors.remove", cfg.Queue.AuthorTaskType())
	assert.Equal(t, 1, cfg.Queue.Concurrency)
	assert.True(t, cfg.App.WorkerEmbedded)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "mongo"}},
		{"unknown policy", map[string]string{"CASCADE_FAILURE_POLICY": "requeue"}},
		{"same routing key", map[string]string{"QUEUE_AUTHOR_ROUTING_KEY": "x", "QUEUE_DOCUMENT_ROUTING_KEY": "x"}},
		{"production without password", map[string]string{"APP_ENV": "production"}},
		{"port out of range", map[string]string{"DB_PORT": "70000"}},
		{"min above max connections", map[string]string{"DB_MIN_CONNECTIONS": "9", "DB_MAX_CONNECTIONS": "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DatabasePool(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_CONNECTIONS", "7")
	t.Setenv("DB_RETRY_DELAY", "250ms")
	t.Setenv("DB_CONNECT_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	pool := cfg.Database.Pool()
	assert.Equal(t, "db.internal", pool.Host)
	assert.Equal(t, 5432, pool.Port)
	assert.Equal(t, "documentmanagement", pool.DBName)
	assert.Equal(t, int32(7), pool.MaxConns)
	assert.Equal(t, 250*time.Millisecond, pool.RetryDelay)
	assert.Equal(t, 10*time.Second, pool.ConnectTimeout)
	assert.Equal(t, "disable", pool.SSLMode)
}
