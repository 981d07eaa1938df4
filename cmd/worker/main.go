// cmd/worker/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"docmanager-backend/internal/config"
	"docmanager-backend/internal/shared/utils"
	"docmanager-backend/pkg/container"
	"docmanager-backend/pkg/logger"
)

func main() {
	envErr := godotenv.Load()
	logger.Init(utils.GetEnvVariable("APP_ENV", "development"), utils.GetEnvVariable("LOG_LEVEL", "info"))
	if envErr != nil {
		log.Warn().Msg("[Worker] No .env file found, using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.NewContainer(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("[Container] Failed to initialize")
	}
	defer c.Cleanup()

	// memstore sống trong process API, worker riêng không thấy được
	if c.Config.Database.Driver == config.DriverMemory {
		log.Fatal().Msg("[Worker] STORE_DRIVER=memory requires WORKER_EMBEDDED=true on the API instead")
	}

	handlers := initializeHandlers(c)

	if err := run(ctx, c.Config, handlers); err != nil {
		log.Fatal().Err(err).Msg("[Worker] Stopped with error")
	}
	log.Info().Msg("[Shutdown] ✓ Stopped")
}
