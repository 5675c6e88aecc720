package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolsail-backend/internal/infrastructure/email"
	"toolsail-backend/internal/shared"
)

type fakeDeliverer struct {
	got []email.Payload
	err error
}

func (f *fakeDeliverer) Deliver(_ context.Context, p email.Payload) error {
	f.got = append(f.got, p)
	return f.err
}

func TestNotificationHandler_Delivers(t *testing.T) {
	d := &fakeDeliverer{}
	h := NewNotificationHandler(d)

	body, _ := json.Marshal(email.Payload{Kind: email.KindVerification, To: "a@b.com", Code: "123456"})
	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSendVerificationEmail, body)))
	require.Len(t, d.got, 1)
	assert.Equal(t, "123456", d.got[0].Code)
}

func TestNotificationHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewNotificationHandler(&fakeDeliverer{})

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSendVerificationEmail, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestNotificationHandler_PropagatesDeliveryError(t *testing.T) {
	h := NewNotificationHandler(&fakeDeliverer{err: errors.New("smtp down")})

	body, _ := json.Marshal(email.Payload{Kind: email.KindApproval, To: "a@b.com"})
	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeSendApprovalEmail, body))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}
