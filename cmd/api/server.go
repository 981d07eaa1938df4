package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"docmanager-backend/internal/infrastructure/queue"
	"docmanager-backend/internal/seed"
	"docmanager-backend/pkg/container"
)

func Serve() {
	ctx := context.Background()

	// ========================================
	// 1. BUILD DI CONTAINER
	// ========================================
	appContainer, err := container.NewContainer(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize container")
	}
	defer appContainer.Cleanup()

	cfg := appContainer.Config

	// ========================================
	// 2. SAMPLE DATA (optional)
	// ========================================
	if cfg.App.Seed {
		if err := seed.Run(ctx, appContainer.AuthorService, appContainer.DocumentService); err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to seed sample data")
		}
	}

	// ========================================
	// 3. EMBEDDED WORKER (optional)
	// ========================================
	var worker *queue.Server
	if cfg.App.WorkerEmbedded {
		worker = queue.NewServer(cfg.Redis, cfg.Queue, appContainer.TaskHandlers)
		if err := worker.Start(); err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to start embedded worker")
		}
	}

	// ========================================
	// 4. CONFIGURE HTTP SERVER
	// ========================================
	router := SetupRouter(appContainer)

	port := cfg.App.Port
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", port),
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info().Msgf("🚀 Server starting on http://localhost:%s", port)
		log.Info().Msgf("💚 Health Check: http://localhost:%s/api/v1/health", port)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("❌ Failed to start server")
		}
	}()

	// ========================================
	// 5. GRACEFUL SHUTDOWN
	// ========================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Server forced to shutdown")
	}

	if worker != nil {
		worker.Shutdown()
	}

	log.Info().Msg("✅ Server exited gracefully")
}
