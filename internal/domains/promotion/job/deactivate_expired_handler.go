package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Deactivator là phần của promotion service mà job cần
type Deactivator interface {
	DeactivateExpired(ctx context.Context) (int64, error)
}

// DeactivateExpiredHandler xử lý task promotion:deactivate_expired (chạy theo cron)
type DeactivateExpiredHandler struct {
	service Deactivator
}

func NewDeactivateExpiredHandler(service Deactivator) *DeactivateExpiredHandler {
	return &DeactivateExpiredHandler{service: service}
}

func (h *DeactivateExpiredHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	n, err := h.service.DeactivateExpired(ctx)
	if err != nil {
		log.Error().Err(err).Str("type", task.Type()).Msg("Failed to deactivate expired promotions")
		return err
	}
	if n > 0 {
		log.Info().Int64("deactivated", n).Msg("Expired promotions deactivated")
	}
	return nil
}
