package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"

	"toolsail-backend/internal/shared"
)

type stubCleaner struct {
	n     int64
	err   error
	calls int
}

func (s *stubCleaner) CleanupExpired(context.Context) (int64, error) {
	s.calls++
	return s.n, s.err
}

func TestCleanupHandler(t *testing.T) {
	task := asynq.NewTask(shared.TypeCleanupExpiredVerification, nil)

	ok := &stubCleaner{n: 3}
	assert.NoError(t, NewCleanupHandler(ok).ProcessTask(context.Background(), task))
	assert.Equal(t, 1, ok.calls)

	failing := &stubCleaner{err: errors.New("db down")}
	assert.Error(t, NewCleanupHandler(failing).ProcessTask(context.Background(), task))
}
