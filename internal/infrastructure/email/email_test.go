package email

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolsail-backend/internal/infrastructure/metrics"
	"toolsail-backend/internal/shared"
)

type recordingSender struct {
	sent []Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type recordingEnqueuer struct {
	tasks []*asynq.Task
}

func (e *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: "t1"}, nil
}

func TestRender_AllKinds(t *testing.T) {
	for _, kind := range []Kind{KindVerification, KindApproval, KindRejection, KindChangesRequested} {
		msg, err := Render(Payload{Kind: kind, To: "a@b.com", Code: "123456", ToolName: "Foo <Tool>", ToolURL: "https://x", Note: "needs docs"})
		require.NoError(t, err, kind)
		assert.Equal(t, "a@b.com", msg.To)
		assert.NotEmpty(t, msg.Subject)
		assert.NotContains(t, msg.HTMLBody, "<Tool>", "tool name is escaped in html")
	}

	_, err := Render(Payload{Kind: "unknown"})
	assert.Error(t, err)
}

func TestDirectMailer_ContentPerKind(t *testing.T) {
	sender := &recordingSender{}
	m := NewDirectMailer(sender)
	ctx := context.Background()

	require.NoError(t, m.SendVerificationEmail(ctx, "a@b.com", "654321"))
	require.NoError(t, m.SendRejectionEmail(ctx, "a@b.com", "Foo", "duplicate listing"))

	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[0].TextBody, "654321")
	assert.Contains(t, sender.sent[1].TextBody, "duplicate listing")
}

func TestDispatcher_SwallowsFailuresAndCounts(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	d := NewDispatcher(NewDirectMailer(sender))

	before := metrics.CounterValue(metrics.Notifications.WithLabelValues("verification", "failed"))
	assert.NotPanics(t, func() {
		d.SendVerificationEmail(context.Background(), "a@b.com", "111111")
	})
	after := metrics.CounterValue(metrics.Notifications.WithLabelValues("verification", "failed"))
	assert.Equal(t, before+1, after)
}

func TestQueueMailer_EnqueuesTypedTask(t *testing.T) {
	enq := &recordingEnqueuer{}
	m := NewQueueMailer(enq)

	require.NoError(t, m.SendApprovalEmail(context.Background(), "a@b.com", "Foo", "https://toolsail.dev/tools/1"))
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, shared.TypeSendApprovalEmail, enq.tasks[0].Type())

	var p Payload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
	assert.Equal(t, KindApproval, p.Kind)
	assert.Equal(t, "Foo", p.ToolName)
}
