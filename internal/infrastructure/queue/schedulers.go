package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"toolsail-backend/internal/shared"
	"toolsail-backend/pkg/logger"
)

// JobSchedule cấu hình cron spec cho các maintenance job
type JobSchedule struct {
	CleanupVerificationCron string
	DeactivatePromotionCron string
}

func DefaultJobSchedule() JobSchedule {
	return JobSchedule{
		CleanupVerificationCron: "*/30 * * * *",
		DeactivatePromotionCron: "5 * * * *",
	}
}

// Registrar là phần của *asynq.Scheduler dùng để đăng ký job
type Registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

type Scheduler struct {
	scheduler *asynq.Scheduler
	schedule  JobSchedule
}

func NewScheduler(redisOpt asynq.RedisConnOpt, schedule JobSchedule) *Scheduler {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
		LogLevel: asynq.InfoLevel,
	})
	return &Scheduler{scheduler: scheduler, schedule: schedule}
}

func (s *Scheduler) RegisterMaintenanceJobs() error {
	return RegisterMaintenanceJobs(s.scheduler, s.schedule)
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

// RegisterMaintenanceJobs đăng ký:
//   - xóa verification token hết hạn
//   - tắt promotion đã qua endsAt
func RegisterMaintenanceJobs(r Registrar, schedule JobSchedule) error {
	jobs := []struct {
		name string
		cron string
		task *asynq.Task
		opts []asynq.Option
	}{
		{
			name: "CleanupExpiredVerification",
			cron: schedule.CleanupVerificationCron,
			task: asynq.NewTask(shared.TypeCleanupExpiredVerification, nil),
			opts: []asynq.Option{asynq.Queue(shared.QueueLow), asynq.MaxRetry(1), asynq.Timeout(5 * time.Minute)},
		},
		{
			name: "DeactivateExpiredPromotions",
			cron: schedule.DeactivatePromotionCron,
			task: asynq.NewTask(shared.TypeDeactivateExpiredPromotion, nil),
			opts: []asynq.Option{asynq.Queue(shared.QueueDefault), asynq.MaxRetry(2), asynq.Timeout(5 * time.Minute)},
		},
	}

	for _, job := range jobs {
		if _, err := r.Register(job.cron, job.task, job.opts...); err != nil {
			logger.Error("Failed to register "+job.name+" job", err)
			return err
		}
		logger.Info("Registered scheduled job", map[string]interface{}{
			"job":  job.name,
			"cron": job.cron,
		})
	}
	return nil
}
