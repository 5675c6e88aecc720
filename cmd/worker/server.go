package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"toolsail-backend/internal/shared"
	"toolsail-backend/pkg/container"
)

type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(c *container.Container, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		c.RedisConnOpt(),
		asynq.Config{
			Queues: map[string]int{
				shared.QueueCritical: 6,
				shared.QueueDefault:  3,
				shared.QueueLow:      1,
			},
			Concurrency: c.Config.Worker.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				log.Error().
					Err(err).
					Str("type", task.Type()).
					Int("retried", retried).
					Int("max_retry", maxRetry).
					Msg("Task failed")
			}),
		},
	)

	go func() {
		log.Info().Int("concurrency", c.Config.Worker.Concurrency).Msg("Worker starting")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("Worker failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown chờ các task đang chạy xong (asynq tự giới hạn bằng ShutdownTimeout)
func (s *asynqServer) Shutdown() {
	s.Server.Shutdown()
}
