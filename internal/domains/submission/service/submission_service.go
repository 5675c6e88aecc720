package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"toolsail-backend/internal/domains/submission/model"
	"toolsail-backend/internal/domains/submission/repository"
	toolmodel "toolsail-backend/internal/domains/tool/model"
	"toolsail-backend/internal/infrastructure/metrics"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/pagination"
	"toolsail-backend/internal/shared/utils"
	"toolsail-backend/pkg/cache"
	"toolsail-backend/pkg/logger"
)

type Options struct {
	// VerifyCode=false giữ hành vi cũ: mã chỉ được kiểm tra độ dài
	VerifyCode bool
	// PublicURL là gốc của link tool trong email duyệt, vd: https://toolsail.dev
	PublicURL string
}

type submissionService struct {
	repo       repository.Repository
	categories CategoryChecker
	verifier   CodeVerifier
	notifier   Notifier
	cache      cache.Cache
	opts       Options
	now        func() time.Time
}

func NewSubmissionService(
	repo repository.Repository,
	categories CategoryChecker,
	verifier CodeVerifier,
	notifier Notifier,
	c cache.Cache,
	opts Options,
) ServiceInterface {
	opts.PublicURL = strings.TrimRight(opts.PublicURL, "/")
	return &submissionService{
		repo:       repo,
		categories: categories,
		verifier:   verifier,
		notifier:   notifier,
		cache:      c,
		opts:       opts,
		now:        time.Now,
	}
}

// ========================================
// INTAKE
// ========================================

// Submit là guest path: submittedByUserId luôn null
func (s *submissionService) Submit(ctx context.Context, req model.SubmitRequest) (*model.Submission, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	if s.opts.VerifyCode {
		ok, err := s.verifier.Verify(ctx, req.SubmitterEmail, req.VerificationCode)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, model.ErrInvalidCode
		}
	} else {
		logger.Warn("Submission accepted without verification code check", map[string]interface{}{
			"email": req.SubmitterEmail,
		})
	}

	sub := s.newSubmission(req.ToolName, req.ToolURL, req.LogoURL, req.Description, req.CategoryID, req.Pricing, req.SubmitterEmail)
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	logger.Info("Submission received", map[string]interface{}{"id": sub.ID, "tool": sub.ToolName})
	return sub, nil
}

func (s *submissionService) SubmitAsUser(ctx context.Context, p shared.Principal, req model.UserSubmitRequest) (*model.Submission, error) {
	if err := p.RequireUser(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.SubmitterEmail) == "" {
		req.SubmitterEmail = p.Email
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	sub := s.newSubmission(req.ToolName, req.ToolURL, req.LogoURL, req.Description, req.CategoryID, req.Pricing, req.SubmitterEmail)
	userID := p.UserID
	sub.SubmittedByUserID = &userID

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *submissionService) ListMine(ctx context.Context, p shared.Principal, page, limit string) ([]*model.Submission, pagination.Meta, error) {
	if err := p.RequireUser(); err != nil {
		return nil, pagination.Meta{}, err
	}
	params := pagination.Parse(page, limit)

	items, total, err := s.repo.List(ctx, model.ListFilter{
		SubmittedBy: p.UserID,
		Limit:       params.Limit,
		Offset:      params.Offset,
	})
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// ========================================
// MODERATION
// ========================================

func (s *submissionService) List(ctx context.Context, p shared.Principal, q model.ListQuery) ([]*model.Submission, pagination.Meta, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, pagination.Meta{}, err
	}
	if err := q.Validate(); err != nil {
		return nil, pagination.Meta{}, err
	}
	params := pagination.Parse(q.Page, q.Limit)

	items, total, err := s.repo.List(ctx, model.ListFilter{
		Status: q.Status,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (s *submissionService) Get(ctx context.Context, p shared.Principal, id string) (*model.Submission, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Approve tạo Tool đã publish từ submission, cùng transaction với việc đổi status
func (s *submissionService) Approve(ctx context.Context, p shared.Principal, id string) (*model.Submission, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}

	now := s.now()
	decision := model.Decision{Status: model.StatusApproved, ReviewerID: p.UserID, At: now}

	sub, tool, err := s.repo.Approve(ctx, id, decision, func(sub *model.Submission) *toolmodel.Tool {
		return &toolmodel.Tool{
			ID:          uuid.NewString(),
			Name:        sub.ToolName,
			URL:         sub.ToolURL,
			Description: sub.ToolDescription,
			LogoURL:     sub.ToolLogo,
			CategoryID:  sub.CategoryID,
			Pricing:     toolmodel.Pricing(sub.PricingType),
			IsPublished: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	})
	if err != nil {
		return nil, err
	}

	s.afterDecision(sub, p)
	s.notifier.SendApprovalEmail(ctx, sub.SubmitterEmail, sub.ToolName, s.opts.PublicURL+"/tools/"+tool.ID)
	s.invalidateTools(ctx)
	return sub, nil
}

func (s *submissionService) Reject(ctx context.Context, p shared.Principal, id string, req model.RejectRequest) (*model.Submission, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(req.Reason)
	sub, err := s.repo.Decide(ctx, id, model.Decision{
		Status:     model.StatusRejected,
		Note:       &reason,
		ReviewerID: p.UserID,
		At:         s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.afterDecision(sub, p)
	s.notifier.SendRejectionEmail(ctx, sub.SubmitterEmail, sub.ToolName, reason)
	return sub, nil
}

func (s *submissionService) RequestChanges(ctx context.Context, p shared.Principal, id string, req model.RequestChangesRequest) (*model.Submission, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	feedback := strings.TrimSpace(req.Feedback)
	sub, err := s.repo.Decide(ctx, id, model.Decision{
		Status:     model.StatusChangesRequested,
		Note:       &feedback,
		ReviewerID: p.UserID,
		At:         s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.afterDecision(sub, p)
	s.notifier.SendChangesRequestedEmail(ctx, sub.SubmitterEmail, sub.ToolName, feedback)
	return sub, nil
}

// ========================================
// HELPERS
// ========================================

// newSubmission nhận giá trị đã qua Normalize + Validate
func (s *submissionService) newSubmission(name, url, logo, description, categoryID, pricing, email string) *model.Submission {
	now := s.now()
	return &model.Submission{
		ID:              uuid.NewString(),
		ToolName:        name,
		ToolURL:         url,
		ToolLogo:        utils.NullableString(logo),
		ToolDescription: description,
		CategoryID:      categoryID,
		PricingType:     pricing,
		SubmitterEmail:  email,
		Status:          model.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *submissionService) checkCategory(ctx context.Context, id string) error {
	ok, err := s.categories.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (s *submissionService) afterDecision(sub *model.Submission, p shared.Principal) {
	metrics.ModerationDecisions.WithLabelValues(string(sub.Status)).Inc()
	logger.Info("Submission decided", map[string]interface{}{
		"id":     sub.ID,
		"status": string(sub.Status),
		"by":     p.UserID,
	})
}

func (s *submissionService) invalidateTools(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, shared.CacheKeyToolList+"*"); err != nil {
		logger.Error("Tool list cache invalidation failed", err)
	}
}
