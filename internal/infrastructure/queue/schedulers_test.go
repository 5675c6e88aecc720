package queue

import (
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolsail-backend/internal/shared"
)

type fakeRegistrar struct {
	specs map[string]string
	err   error
}

func (f *fakeRegistrar) Register(cronspec string, task *asynq.Task, _ ...asynq.Option) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.specs[task.Type()] = cronspec
	return task.Type(), nil
}

func TestRegisterMaintenanceJobs(t *testing.T) {
	r := &fakeRegistrar{specs: map[string]string{}}
	require.NoError(t, RegisterMaintenanceJobs(r, DefaultJobSchedule()))

	assert.Equal(t, "*/30 * * * *", r.specs[shared.TypeCleanupExpiredVerification])
	assert.Equal(t, "5 * * * *", r.specs[shared.TypeDeactivateExpiredPromotion])
}

func TestRegisterMaintenanceJobs_PropagatesError(t *testing.T) {
	r := &fakeRegistrar{specs: map[string]string{}, err: errors.New("bad cron")}
	assert.Error(t, RegisterMaintenanceJobs(r, DefaultJobSchedule()))
}
