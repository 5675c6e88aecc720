package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"toolsail-backend/pkg/container"
	"toolsail-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container")
	}
	defer c.Cleanup()

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	go c.DB.MonitorPoolHealth(monitorCtx, time.Minute)

	handlers := initializeHandlers(c)
	srv := setupAsynqServer(c, handlers)
	scheduler := setupScheduler(c)

	if err := startServices(c); err != nil {
		log.Fatal().Err(err).Msg("Startup health check failed")
	}

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Worker shutting down...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("Worker stopped")
}
