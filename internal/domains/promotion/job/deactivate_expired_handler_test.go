package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"

	"toolsail-backend/internal/shared"
)

type stubDeactivator struct {
	n   int64
	err error
}

func (s stubDeactivator) DeactivateExpired(context.Context) (int64, error) {
	return s.n, s.err
}

func TestDeactivateExpiredHandler(t *testing.T) {
	task := asynq.NewTask(shared.TypeDeactivateExpiredPromotion, nil)

	assert.NoError(t, NewDeactivateExpiredHandler(stubDeactivator{n: 2}).ProcessTask(context.Background(), task))
	assert.Error(t, NewDeactivateExpiredHandler(stubDeactivator{err: errors.New("db down")}).ProcessTask(context.Background(), task))
}
