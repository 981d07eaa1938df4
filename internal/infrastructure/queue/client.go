package queue

import (
	"github.com/hibiken/asynq"

	"docmanager-backend/internal/config"
)

// RedisOpt builds the asynq connection options from the redis config
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewClient creates the producer-side client. Callers own Close().
func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}

// NewInspector gives read access to queue state (pending, archived ...)
func NewInspector(cfg config.RedisConfig) *asynq.Inspector {
	return asynq.NewInspector(RedisOpt(cfg))
}
