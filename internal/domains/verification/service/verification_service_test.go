package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"toolsail-backend/internal/domains/verification/model"
	"toolsail-backend/internal/infrastructure/email"
	"toolsail-backend/internal/infrastructure/ratelimit"
	"toolsail-backend/internal/shared"
)

type fakeRepo struct {
	mu     sync.Mutex
	tokens []*model.Token
}

func (r *fakeRepo) Create(_ context.Context, t *model.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, t)
	return nil
}

func (r *fakeRepo) ListActiveByEmail(_ context.Context, email string, now time.Time, maxAttempts int) ([]*model.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Token
	for _, t := range r.tokens {
		if t.Email == email && !t.Expired(now) && t.Attempts < maxAttempts {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepo) Consume(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tokens {
		if t.ID == id {
			r.tokens = append(r.tokens[:i], r.tokens[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) RecordFailedAttempt(_ context.Context, email string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.Email == email && !t.Expired(now) {
			t.Attempts++
		}
	}
	return nil
}

func (r *fakeRepo) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.tokens[:0]
	for _, t := range r.tokens {
		if t.Email != email {
			kept = append(kept, t)
		}
	}
	r.tokens = kept
	return nil
}

func (r *fakeRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	kept := r.tokens[:0]
	for _, t := range r.tokens {
		if t.Expired(now) {
			n++
			continue
		}
		kept = append(kept, t)
	}
	r.tokens = kept
	return n, nil
}

type captureNotifier struct {
	to, code string
	calls    int
}

func (n *captureNotifier) SendVerificationEmail(_ context.Context, to, code string) {
	n.to, n.code = to, code
	n.calls++
}

// failingMailer luôn lỗi, dùng để kiểm tra Dispatcher nuốt lỗi
type failingMailer struct{}

func (failingMailer) SendVerificationEmail(context.Context, string, string) error {
	return errors.New("smtp down")
}
func (failingMailer) SendApprovalEmail(context.Context, string, string, string) error {
	return errors.New("smtp down")
}
func (failingMailer) SendRejectionEmail(context.Context, string, string, string) error {
	return errors.New("smtp down")
}
func (failingMailer) SendChangesRequestedEmail(context.Context, string, string, string) error {
	return errors.New("smtp down")
}

func newTestService(repo *fakeRepo, n Notifier, l Limiter) *verificationService {
	return NewVerificationService(repo, n, l, Options{TTL: 10 * time.Minute, Cost: bcrypt.MinCost}).(*verificationService)
}

func TestIssue_RejectsMalformedEmail(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &captureNotifier{}, nil)

	err := svc.Issue(context.Background(), model.IssueRequest{Email: "not-an-email"})
	require.Error(t, err)
	appErr := shared.AsAppError(err)
	assert.Equal(t, 400, appErr.HTTPStatus)
	assert.Contains(t, appErr.Details, "email")
	assert.Empty(t, repo.tokens)
}

func TestIssue_StoresHashAndSendsCode(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &captureNotifier{}
	svc := newTestService(repo, notifier, nil)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.Issue(context.Background(), model.IssueRequest{Email: " A@B.com "}))

	require.Len(t, repo.tokens, 1)
	tok := repo.tokens[0]
	assert.Equal(t, "a@b.com", tok.Email)
	assert.Equal(t, now.Add(10*time.Minute), tok.ExpiresAt)
	assert.NotEqual(t, notifier.code, tok.TokenHash)
	assert.Equal(t, "a@b.com", notifier.to)

	code, err := strconv.Atoi(notifier.code)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, code, 100000)
	assert.LessOrEqual(t, code, 999999)
}

func TestIssue_SucceedsWhenDispatchFails(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, email.NewDispatcher(failingMailer{}), nil)

	err := svc.Issue(context.Background(), model.IssueRequest{Email: "a@b.com"})
	assert.NoError(t, err)
	assert.Len(t, repo.tokens, 1)
}

func TestVerify_ConsumesMatchingCode(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &captureNotifier{}
	svc := newTestService(repo, notifier, nil)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, model.IssueRequest{Email: "a@b.com"}))

	ok, err := svc.Verify(ctx, "a@b.com", "000000")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Verify(ctx, "A@b.com", notifier.code)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Verify(ctx, "a@b.com", notifier.code)
	require.NoError(t, err)
	assert.False(t, ok, "code must be single use")
}

func TestVerify_LocksAfterMaxFailedAttempts(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &captureNotifier{}
	svc := NewVerificationService(repo, notifier, nil, Options{Cost: bcrypt.MinCost, MaxAttempts: 3}).(*verificationService)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, model.IssueRequest{Email: "a@b.com"}))
	wrong := "000000"
	if notifier.code == wrong {
		wrong = "111111"
	}

	for i := 0; i < 3; i++ {
		ok, err := svc.Verify(ctx, "a@b.com", wrong)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, 3, repo.tokens[0].Attempts)

	ok, err := svc.Verify(ctx, "a@b.com", notifier.code)
	require.NoError(t, err)
	assert.False(t, ok, "correct code must be refused once the attempt budget is spent")

	// mã mới phát sau đó vẫn dùng được
	require.NoError(t, svc.Issue(ctx, model.IssueRequest{Email: "a@b.com"}))
	ok, err = svc.Verify(ctx, "a@b.com", notifier.code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_ConcurrentUseSucceedsOnce(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &captureNotifier{}
	svc := newTestService(repo, notifier, nil)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, model.IssueRequest{Email: "a@b.com"}))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := svc.Verify(ctx, "a@b.com", notifier.code)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

// lostRaceRepo mô phỏng token đã bị request khác xoá giữa lúc list và consume
type lostRaceRepo struct {
	*fakeRepo
}

func (lostRaceRepo) Consume(context.Context, string) (bool, error) { return false, nil }

func TestVerify_TokenConsumedElsewhere(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &captureNotifier{}
	svc := NewVerificationService(lostRaceRepo{repo}, notifier, nil, Options{Cost: bcrypt.MinCost})
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, model.IssueRequest{Email: "a@b.com"}))

	ok, err := svc.Verify(ctx, "a@b.com", notifier.code)
	require.NoError(t, err)
	assert.False(t, ok)
	require.Len(t, repo.tokens, 1)
	assert.Zero(t, repo.tokens[0].Attempts, "a lost race is not a wrong guess")
}

func TestVerify_ExpiredCodeAndCleanup(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &captureNotifier{}
	svc := newTestService(repo, notifier, nil)
	ctx := context.Background()
	now := time.Now()
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.Issue(ctx, model.IssueRequest{Email: "a@b.com"}))

	now = now.Add(11 * time.Minute)
	ok, err := svc.Verify(ctx, "a@b.com", notifier.code)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Empty(t, repo.tokens)
}

func TestIssue_RateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	repo := &fakeRepo{}
	svc := newTestService(repo, &captureNotifier{}, ratelimit.New(client, "verify:", 2, time.Hour))
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, model.IssueRequest{Email: "a@b.com"}))
	require.NoError(t, svc.Issue(ctx, model.IssueRequest{Email: "a@b.com"}))

	err := svc.Issue(ctx, model.IssueRequest{Email: "a@b.com"})
	assert.ErrorIs(t, err, model.ErrRateLimited)
	assert.Equal(t, 429, shared.AsAppError(err).HTTPStatus)

	// email khác có quota riêng
	assert.NoError(t, svc.Issue(ctx, model.IssueRequest{Email: "c@d.com"}))
	assert.Len(t, repo.tokens, 3)
}

func TestGenerateCode_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, _ := strconv.Atoi(code)
		require.True(t, n >= 100000 && n <= 999999)
	}
}
