package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"toolsail-backend/internal/infrastructure/email"
)

// Deliverer là DirectMailer phía worker
type Deliverer interface {
	Deliver(ctx context.Context, p email.Payload) error
}

// NotificationHandler xử lý mọi task email:* do QueueMailer enqueue
type NotificationHandler struct {
	deliverer Deliverer
}

func NewNotificationHandler(deliverer Deliverer) *NotificationHandler {
	return &NotificationHandler{deliverer: deliverer}
}

func (h *NotificationHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.Payload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Str("type", task.Type()).Msg("Failed to unmarshal notification payload")
		// payload hỏng thì retry cũng vô ích
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if email.TaskType(payload.Kind) != task.Type() {
		return fmt.Errorf("payload kind %q does not match task %s: %w", payload.Kind, task.Type(), asynq.SkipRetry)
	}

	if err := h.deliverer.Deliver(ctx, payload); err != nil {
		log.Error().Err(err).Str("kind", string(payload.Kind)).Msg("Failed to deliver notification")
		return err
	}

	log.Info().
		Str("kind", string(payload.Kind)).
		Str("to", payload.To).
		Msg("Notification delivered")
	return nil
}
