package main

import (
	"github.com/hibiken/asynq"

	promotionJob "toolsail-backend/internal/domains/promotion/job"
	verificationJob "toolsail-backend/internal/domains/verification/job"
	"toolsail-backend/internal/infrastructure/email"
	emailJob "toolsail-backend/internal/infrastructure/email/job"
	"toolsail-backend/internal/shared"
	"toolsail-backend/pkg/container"
)

// HandlerRegistry gom các task handler của worker
type HandlerRegistry struct {
	notification         *emailJob.NotificationHandler
	cleanupVerification  *verificationJob.CleanupHandler
	deactivatePromotions *promotionJob.DeactivateExpiredHandler
}

// initializeHandlers: worker luôn gửi mail trực tiếp qua SMTP, kể cả khi API chạy NOTIFY_MODE=queue
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		notification:         emailJob.NewNotificationHandler(email.NewDirectMailer(c.Sender)),
		cleanupVerification:  verificationJob.NewCleanupHandler(c.VerificationService),
		deactivatePromotions: promotionJob.NewDeactivateExpiredHandler(c.PromotionService),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Notifications
	mux.HandleFunc(shared.TypeSendVerificationEmail, h.notification.ProcessTask)
	mux.HandleFunc(shared.TypeSendApprovalEmail, h.notification.ProcessTask)
	mux.HandleFunc(shared.TypeSendRejectionEmail, h.notification.ProcessTask)
	mux.HandleFunc(shared.TypeSendChangesRequestedEmail, h.notification.ProcessTask)

	// Maintenance
	mux.HandleFunc(shared.TypeCleanupExpiredVerification, h.cleanupVerification.ProcessTask)
	mux.HandleFunc(shared.TypeDeactivateExpiredPromotion, h.deactivatePromotions.ProcessTask)
}
