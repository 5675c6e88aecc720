package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"toolsail-backend/internal/domains/verification/model"
	"toolsail-backend/internal/domains/verification/repository"
	"toolsail-backend/internal/infrastructure/metrics"
	"toolsail-backend/pkg/logger"
)

const (
	codeMin   = 100000
	codeRange = 900000 // [100000, 999999]
)

type Options struct {
	TTL  time.Duration
	Cost int // bcrypt cost
	// MaxAttempts: số lần đoán sai tối đa trước khi mọi mã đang mở của email bị vô hiệu
	MaxAttempts int
}

const defaultMaxAttempts = 5

type verificationService struct {
	repo     repository.Repository
	notifier Notifier
	limiter  Limiter
	opts     Options
	now      func() time.Time
}

// NewVerificationService: limiter nil = không giới hạn
func NewVerificationService(repo repository.Repository, notifier Notifier, limiter Limiter, opts Options) ServiceInterface {
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Minute
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.Cost < bcrypt.MinCost || opts.Cost > bcrypt.MaxCost {
		opts.Cost = bcrypt.DefaultCost
	}
	return &verificationService{
		repo:     repo,
		notifier: notifier,
		limiter:  limiter,
		opts:     opts,
		now:      time.Now,
	}
}

func (s *verificationService) Issue(ctx context.Context, req model.IssueRequest) error {
	req.Email = model.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return err
	}
	email := req.Email

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			// Redis lỗi thì không chặn người dùng
			logger.Error("Verification rate limiter failed", err)
		} else if !allowed {
			metrics.VerificationCodes.WithLabelValues("rate_limited").Inc()
			return model.ErrRateLimited
		}
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.opts.Cost)
	if err != nil {
		return fmt.Errorf("hash verification code: %w", err)
	}

	now := s.now()
	token := &model.Token{
		ID:        uuid.NewString(),
		Email:     email,
		TokenHash: string(hash),
		ExpiresAt: now.Add(s.opts.TTL),
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, token); err != nil {
		return err
	}
	metrics.VerificationCodes.WithLabelValues("issued").Inc()

	s.notifier.SendVerificationEmail(ctx, email, code)
	return nil
}

func (s *verificationService) Verify(ctx context.Context, email, code string) (bool, error) {
	email = model.NormalizeEmail(email)
	now := s.now()

	tokens, err := s.repo.ListActiveByEmail(ctx, email, now, s.opts.MaxAttempts)
	if err != nil {
		return false, err
	}

	for _, t := range tokens {
		if bcrypt.CompareHashAndPassword([]byte(t.TokenHash), []byte(code)) != nil {
			continue
		}

		consumed, err := s.repo.Consume(ctx, t.ID)
		if err != nil {
			return false, err
		}
		if !consumed {
			// request đồng thời đã dùng mã này
			metrics.VerificationCodes.WithLabelValues("already_used").Inc()
			return false, nil
		}

		// mã khác của cùng email không còn giá trị sau khi một mã đã dùng
		if err := s.repo.DeleteByEmail(ctx, email); err != nil {
			logger.Error("Failed to revoke sibling verification tokens", err)
		}
		metrics.VerificationCodes.WithLabelValues("matched").Inc()
		return true, nil
	}

	if len(tokens) > 0 {
		if err := s.repo.RecordFailedAttempt(ctx, email, now); err != nil {
			return false, err
		}
	}
	metrics.VerificationCodes.WithLabelValues("mismatch").Inc()
	return false, nil
}

func (s *verificationService) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info("Expired verification tokens removed", map[string]interface{}{"count": n})
	}
	return n, nil
}

// generateCode trả mã 6 chữ số phân phối đều trên [100000, 999999]
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+codeMin), nil
}
