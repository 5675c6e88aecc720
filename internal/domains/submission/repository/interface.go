package repository

import (
	"context"

	"toolsail-backend/internal/domains/submission/model"
	toolmodel "toolsail-backend/internal/domains/tool/model"
)

// ToolBuilder dựng Tool từ submission đang được duyệt
type ToolBuilder func(s *model.Submission) *toolmodel.Tool

type Repository interface {
	Create(ctx context.Context, s *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.Submission, int64, error)

	// Approve khóa submission, tạo Tool và chuyển sang approved trong cùng transaction.
	// Submission không còn pending -> ErrNotPending.
	Approve(ctx context.Context, id string, d model.Decision, build ToolBuilder) (*model.Submission, *toolmodel.Tool, error)

	// Decide chuyển pending -> rejected/changes_requested bằng conditional update
	Decide(ctx context.Context, id string, d model.Decision) (*model.Submission, error)
}
