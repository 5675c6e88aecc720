package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Cleaner là phần của verification service mà job cần
type Cleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// CleanupHandler xử lý task verification:cleanup_expired (chạy theo cron)
type CleanupHandler struct {
	service Cleaner
}

func NewCleanupHandler(service Cleaner) *CleanupHandler {
	return &CleanupHandler{service: service}
}

func (h *CleanupHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	n, err := h.service.CleanupExpired(ctx)
	if err != nil {
		log.Error().Err(err).Str("type", task.Type()).Msg("Failed to clean up verification tokens")
		return err
	}
	log.Info().Int64("deleted", n).Msg("Verification token cleanup finished")
	return nil
}
