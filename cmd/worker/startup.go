// cmd/worker/startup.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"docmanager-backend/internal/config"
	"docmanager-backend/internal/infrastructure/queue"
	"docmanager-backend/internal/shared/utils"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	redisClient *redis.Client
	inspector   *asynq.Inspector
	queues      []string
}

func newHealthChecker(cfg *config.Config) *HealthChecker {
	return &HealthChecker{
		redisClient: redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			MaintNotificationsConfig: &maintnotifications.Config{
				Mode: maintnotifications.ModeDisabled,
			},
		}),
		inspector: queue.NewInspector(cfg.Redis),
		queues:    []string{cfg.Queue.AuthorQueue, cfg.Queue.DocumentQueue},
	}
}

// checkRedis verifies the broker is reachable
func (h *HealthChecker) checkRedis(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return h.redisClient.Ping(ctx).Err()
}

// queueStats - số task theo trạng thái; archived là các message retry policy đã bỏ cuộc
func (h *HealthChecker) queueStats() gin.H {
	stats := gin.H{}
	for _, name := range h.queues {
		info, err := h.inspector.GetQueueInfo(name)
		if err != nil {
			// queue chưa có task nào thì chưa tồn tại trong Redis
			stats[name] = gin.H{"pending": 0}
			continue
		}
		stats[name] = gin.H{
			"pending":   info.Pending,
			"active":    info.Active,
			"retry":     info.Retry,
			"archived":  info.Archived,
			"processed": info.Processed,
			"failed":    info.Failed,
		}
	}
	return stats
}

func (h *HealthChecker) Close() error {
	if err := h.inspector.Close(); err != nil {
		log.Warn().Err(err).Msg("[Health] Failed to close inspector")
	}
	return h.redisClient.Close()
}

// run checks the broker, starts the consumers and the health endpoint, and
// blocks until ctx is cancelled or one of them fails.
func run(ctx context.Context, cfg *config.Config, handlers queue.Handlers) error {
	log.Info().Msg("============================================")
	log.Info().Msg("🚀 Document Management Worker Starting...")
	log.Info().Msg("============================================")

	checker := newHealthChecker(cfg)
	defer checker.Close()

	log.Info().Msg("⏳ Checking Redis Connection...")
	if err := checker.checkRedis(ctx); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	log.Info().Msg("✓ Redis Connection: OK")

	srv := queue.NewServer(cfg.Redis, cfg.Queue, handlers)
	if err := srv.Start(); err != nil {
		return err
	}

	healthAddr := utils.GetEnvVariable("WORKER_HEALTH_ADDR", ":9999")
	healthSrv := &http.Server{
		Addr:              healthAddr,
		Handler:           healthRouter(checker),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", healthAddr).Msg("[Health] Starting health check server")
		if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("[Shutdown] Gracefully stopping...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = healthSrv.Shutdown(shutdownCtx)

		srv.Shutdown()
		return nil
	})

	return g.Wait()
}

// healthRouter - /health (liveness) và /ready (readiness, cần Redis)
func healthRouter(checker *HealthChecker) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "docmanager-worker"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := checker.checkRedis(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "NOT_READY", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "READY", "queues": checker.queueStats()})
	})

	return r
}
