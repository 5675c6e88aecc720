package email

import (
	"context"
	"fmt"
)

// Mailer gửi notification và trả lỗi khi thất bại.
// Caller phía HTTP không dùng Mailer trực tiếp mà đi qua Dispatcher.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, code string) error
	SendApprovalEmail(ctx context.Context, to, toolName, toolURL string) error
	SendRejectionEmail(ctx context.Context, to, toolName, reason string) error
	SendChangesRequestedEmail(ctx context.Context, to, toolName, feedback string) error
}

// DirectMailer render và gửi ngay trong request
type DirectMailer struct {
	sender Sender
}

func NewDirectMailer(sender Sender) *DirectMailer {
	return &DirectMailer{sender: sender}
}

func (m *DirectMailer) SendVerificationEmail(ctx context.Context, to, code string) error {
	return m.Deliver(ctx, Payload{Kind: KindVerification, To: to, Code: code})
}

func (m *DirectMailer) SendApprovalEmail(ctx context.Context, to, toolName, toolURL string) error {
	return m.Deliver(ctx, Payload{Kind: KindApproval, To: to, ToolName: toolName, ToolURL: toolURL})
}

func (m *DirectMailer) SendRejectionEmail(ctx context.Context, to, toolName, reason string) error {
	return m.Deliver(ctx, Payload{Kind: KindRejection, To: to, ToolName: toolName, Note: reason})
}

func (m *DirectMailer) SendChangesRequestedEmail(ctx context.Context, to, toolName, feedback string) error {
	return m.Deliver(ctx, Payload{Kind: KindChangesRequested, To: to, ToolName: toolName, Note: feedback})
}

// Deliver render payload và gửi, worker cũng gọi hàm này
func (m *DirectMailer) Deliver(ctx context.Context, p Payload) error {
	msg, err := Render(p)
	if err != nil {
		return err
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("deliver %s email: %w", p.Kind, err)
	}
	return nil
}
