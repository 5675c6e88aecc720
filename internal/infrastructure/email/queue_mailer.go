package email

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"toolsail-backend/internal/shared"
)

// Enqueuer là phần của *asynq.Client mà QueueMailer cần
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueMailer đẩy notification vào asynq, worker sẽ gửi qua SMTP
type QueueMailer struct {
	client Enqueuer
}

func NewQueueMailer(client Enqueuer) *QueueMailer {
	return &QueueMailer{client: client}
}

// TaskType map Kind sang asynq task type
func TaskType(kind Kind) string {
	switch kind {
	case KindVerification:
		return shared.TypeSendVerificationEmail
	case KindApproval:
		return shared.TypeSendApprovalEmail
	case KindRejection:
		return shared.TypeSendRejectionEmail
	case KindChangesRequested:
		return shared.TypeSendChangesRequestedEmail
	}
	return ""
}

func (m *QueueMailer) SendVerificationEmail(ctx context.Context, to, code string) error {
	// code chỉ sống 10 phút, retry lâu hơn không có ý nghĩa
	return m.enqueue(ctx, Payload{Kind: KindVerification, To: to, Code: code},
		asynq.Queue(shared.QueueCritical), asynq.MaxRetry(3), asynq.Timeout(30*time.Second))
}

func (m *QueueMailer) SendApprovalEmail(ctx context.Context, to, toolName, toolURL string) error {
	return m.enqueue(ctx, Payload{Kind: KindApproval, To: to, ToolName: toolName, ToolURL: toolURL},
		asynq.Queue(shared.QueueDefault), asynq.MaxRetry(5))
}

func (m *QueueMailer) SendRejectionEmail(ctx context.Context, to, toolName, reason string) error {
	return m.enqueue(ctx, Payload{Kind: KindRejection, To: to, ToolName: toolName, Note: reason},
		asynq.Queue(shared.QueueDefault), asynq.MaxRetry(5))
}

func (m *QueueMailer) SendChangesRequestedEmail(ctx context.Context, to, toolName, feedback string) error {
	return m.enqueue(ctx, Payload{Kind: KindChangesRequested, To: to, ToolName: toolName, Note: feedback},
		asynq.Queue(shared.QueueDefault), asynq.MaxRetry(5))
}

func (m *QueueMailer) enqueue(ctx context.Context, p Payload, opts ...asynq.Option) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", p.Kind, err)
	}
	if _, err := m.client.EnqueueContext(ctx, asynq.NewTask(TaskType(p.Kind), body), opts...); err != nil {
		return fmt.Errorf("enqueue %s email: %w", p.Kind, err)
	}
	return nil
}
