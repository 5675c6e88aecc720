package email

import (
	"context"

	"toolsail-backend/internal/infrastructure/metrics"
	"toolsail-backend/pkg/logger"
)

// Dispatcher bọc một Mailer: không bao giờ trả lỗi cho caller.
// Kết quả mỗi lần gửi được log và đếm trong toolsail_notifications_total{kind,outcome}.
type Dispatcher struct {
	next Mailer
}

func NewDispatcher(next Mailer) *Dispatcher {
	return &Dispatcher{next: next}
}

func (d *Dispatcher) SendVerificationEmail(ctx context.Context, to, code string) {
	d.record(KindVerification, to, d.next.SendVerificationEmail(ctx, to, code))
}

func (d *Dispatcher) SendApprovalEmail(ctx context.Context, to, toolName, toolURL string) {
	d.record(KindApproval, to, d.next.SendApprovalEmail(ctx, to, toolName, toolURL))
}

func (d *Dispatcher) SendRejectionEmail(ctx context.Context, to, toolName, reason string) {
	d.record(KindRejection, to, d.next.SendRejectionEmail(ctx, to, toolName, reason))
}

func (d *Dispatcher) SendChangesRequestedEmail(ctx context.Context, to, toolName, feedback string) {
	d.record(KindChangesRequested, to, d.next.SendChangesRequestedEmail(ctx, to, toolName, feedback))
}

func (d *Dispatcher) record(kind Kind, to string, err error) {
	if err != nil {
		metrics.Notifications.WithLabelValues(string(kind), "failed").Inc()
		logger.Warn("Notification dispatch failed", map[string]interface{}{
			"kind":  string(kind),
			"to":    to,
			"error": err.Error(),
		})
		return
	}
	metrics.Notifications.WithLabelValues(string(kind), "ok").Inc()
}
