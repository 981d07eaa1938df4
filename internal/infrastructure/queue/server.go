package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"docmanager-backend/internal/config"
	"docmanager-backend/pkg/logger"
)

// TaskHandler is implemented by every cascade consumer
type TaskHandler interface {
	ProcessTask(ctx context.Context, task *asynq.Task) error
}

// Handlers maps task types to their consumer
type Handlers map[string]TaskHandler

// Server wraps asynq.Server; it is used by cmd/worker and by the API process
// when the worker is embedded.
type Server struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

// NewServer subscribes to the author-delete and document-delete queues with
// equal priority. Concurrency 1 processes one message at a time.
func NewServer(redisCfg config.RedisConfig, queueCfg config.QueueConfig, handlers Handlers) *Server {
	mux := asynq.NewServeMux()
	for taskType, h := range handlers {
		mux.Handle(taskType, h)
		log.Info().Str("task_type", taskType).Msg("[Worker] Handler registered")
	}

	srv := asynq.NewServer(
		RedisOpt(redisCfg),
		asynq.Config{
			Queues: map[string]int{
				queueCfg.AuthorQueue:   1,
				queueCfg.DocumentQueue: 1,
			},
			Concurrency:     queueCfg.Concurrency,
			Logger:          logger.NewAsynqLogger("asynq"),
			ShutdownTimeout: 30 * time.Second,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				log.Error().
					Err(err).
					Str("task_type", task.Type()).
					Int("retry", retried).
					Int("max_retry", maxRetry).
					Msg("[Asynq] ❌ Task failed")
			}),
		},
	)

	return &Server{srv: srv, mux: mux}
}

// Start runs the server in background goroutines and returns
func (s *Server) Start() error {
	log.Info().Msg("[Worker] Starting...")
	if err := s.srv.Start(s.mux); err != nil {
		return fmt.Errorf("start asynq server: %w", err)
	}
	return nil
}

// Shutdown waits for in-flight tasks up to ShutdownTimeout
func (s *Server) Shutdown() {
	log.Info().Msg("[Worker] Shutting down (waiting max 30s)...")
	s.srv.Shutdown()
	log.Info().Msg("[Worker] ✓ Gracefully stopped")
}
