package service

import (
	"context"

	"toolsail-backend/internal/domains/submission/model"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/pagination"
)

type ServiceInterface interface {
	// Intake
	Submit(ctx context.Context, req model.SubmitRequest) (*model.Submission, error)
	SubmitAsUser(ctx context.Context, p shared.Principal, req model.UserSubmitRequest) (*model.Submission, error)
	ListMine(ctx context.Context, p shared.Principal, page, limit string) ([]*model.Submission, pagination.Meta, error)

	// Moderation (admin)
	List(ctx context.Context, p shared.Principal, q model.ListQuery) ([]*model.Submission, pagination.Meta, error)
	Get(ctx context.Context, p shared.Principal, id string) (*model.Submission, error)
	Approve(ctx context.Context, p shared.Principal, id string) (*model.Submission, error)
	Reject(ctx context.Context, p shared.Principal, id string, req model.RejectRequest) (*model.Submission, error)
	RequestChanges(ctx context.Context, p shared.Principal, id string, req model.RequestChangesRequest) (*model.Submission, error)
}

// CodeVerifier kiểm tra mã xác minh đã phát cho email
type CodeVerifier interface {
	Verify(ctx context.Context, email, code string) (bool, error)
}

// CategoryChecker xác nhận category tồn tại
type CategoryChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Notifier là phần moderation của email Dispatcher (best-effort, không trả lỗi)
type Notifier interface {
	SendApprovalEmail(ctx context.Context, to, toolName, toolURL string)
	SendRejectionEmail(ctx context.Context, to, toolName, reason string)
	SendChangesRequestedEmail(ctx context.Context, to, toolName, feedback string)
}
