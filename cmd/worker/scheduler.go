package main

import (
	"github.com/rs/zerolog/log"

	"toolsail-backend/internal/infrastructure/queue"
	"toolsail-backend/pkg/container"
)

type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(c *container.Container) *asynqScheduler {
	schedule := queue.JobSchedule{
		CleanupVerificationCron: c.Config.Worker.CleanupVerificationCron,
		DeactivatePromotionCron: c.Config.Worker.DeactivatePromotionCron,
	}
	scheduler := queue.NewScheduler(c.RedisConnOpt(), schedule)

	if err := scheduler.RegisterMaintenanceJobs(); err != nil {
		log.Fatal().Err(err).Msg("Failed to register scheduled jobs")
	}

	go func() {
		log.Info().Msg("Scheduler starting")
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("Scheduler failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	s.Scheduler.Shutdown()
	log.Info().Msg("Scheduler stopped")
}
