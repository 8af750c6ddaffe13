package execute

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/pkg/convo/state"
)

type fakeSender struct {
	calls []string
	err   error
}

func (f *fakeSender) SendResource(_ context.Context, to, resource, link string) error {
	f.calls = append(f.calls, to+"|"+resource+"|"+link)
	return f.err
}

type fakeNotifier struct {
	reasons []string
	err     error
}

func (f *fakeNotifier) NotifyOwner(_ context.Context, reason, _ string) error {
	f.reasons = append(f.reasons, reason)
	return f.err
}

type fakeCollector struct {
	contacts []string
	err      error
}

func (f *fakeCollector) Collect(_ context.Context, _, contact, _ string) error {
	f.contacts = append(f.contacts, contact)
	return f.err
}

type staticLinker struct{ url string }

func (s *staticLinker) ResourceLink(string) (string, error) { return s.url, nil }

func pendingTurn(actions ...state.Action) *state.TurnState {
	st := state.NewTurnState(constant.RoleRecruiter, "send me your resume please", nil)
	st.Pending = actions
	return st
}

func TestExecutorDispatchesAllEffects(t *testing.T) {
	sender := &fakeSender{}
	notifier := &fakeNotifier{}
	collector := &fakeCollector{}
	ex := NewExecutor(sender, []OwnerNotifier{notifier}, collector, &staticLinker{url: "https://x/dl"}, nil, logger.NewNopLogger())

	st := pendingTurn(
		state.Action{Type: constant.ActionSendResource, Params: map[string]string{"to": "a@b.test", "resource": "resume"}},
		state.Action{Type: constant.ActionNotifyOwner, Params: map[string]string{"reason": "resource_requested"}},
		state.Action{Type: constant.ActionCollectMessage, Params: map[string]string{"contact": "a@b.test"}},
	)

	sum := ex.Run(context.Background(), "sess-1", st)

	assert.Equal(t, Summary{Executed: 3}, sum)
	assert.Equal(t, []string{"a@b.test|resume|https://x/dl"}, sender.calls)
	assert.Equal(t, []string{"resource_requested"}, notifier.reasons)
	assert.Equal(t, []string{"a@b.test"}, collector.contacts)
	assert.Nil(t, st.Pending, "executed actions must not survive for replay")
}

func TestExecutorFailureIsolation(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	collector := &fakeCollector{}
	ex := NewExecutor(sender, nil, collector, nil, nil, logger.NewNopLogger())

	st := pendingTurn(
		state.Action{Type: constant.ActionSendResource, Params: map[string]string{"to": "a@b.test", "resource": "resume"}},
		state.Action{Type: constant.ActionCollectMessage, Params: map[string]string{"contact": "a@b.test"}},
	)

	sum := ex.Run(context.Background(), "sess-1", st)

	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 1, sum.Executed, "later actions still run after an earlier failure")
	assert.Len(t, collector.contacts, 1)
}

func TestExecutorSkipsDisabledChannels(t *testing.T) {
	ex := NewExecutor(nil, nil, nil, nil, nil, logger.NewNopLogger())

	st := pendingTurn(
		state.Action{Type: constant.ActionSendResource, Params: map[string]string{"to": "a@b.test"}},
		state.Action{Type: constant.ActionNotifyOwner, Params: map[string]string{"reason": "hiring_signal_detected"}},
		state.Action{Type: constant.ActionCollectMessage, Params: map[string]string{"contact": "a@b.test"}},
	)

	sum := ex.Run(context.Background(), "sess-1", st)

	assert.Equal(t, Summary{Skipped: 3}, sum)
	assert.Nil(t, st.Pending)
}

func TestExecutorSkipsSendWithoutAddress(t *testing.T) {
	sender := &fakeSender{}
	ex := NewExecutor(sender, nil, nil, nil, nil, logger.NewNopLogger())

	st := pendingTurn(state.Action{Type: constant.ActionSendResource, Params: map[string]string{"resource": "resume"}})
	sum := ex.Run(context.Background(), "sess-1", st)

	assert.Empty(t, sender.calls)
	assert.Equal(t, Summary{Skipped: 1}, sum)
}

func TestExecutorIgnoresContentActions(t *testing.T) {
	ex := NewExecutor(&fakeSender{}, nil, &fakeCollector{}, nil, nil, logger.NewNopLogger())

	st := pendingTurn(
		state.Action{Type: constant.ActionShareFunFact},
		state.Action{Type: constant.ActionRenderReport, Params: map[string]string{"kind": "career_summary"}},
	)
	sum := ex.Run(context.Background(), "sess-1", st)

	assert.Equal(t, Summary{}, sum)
	assert.Nil(t, st.Pending)
}

type fakeSink struct {
	requests []string
	messages []string
	err      error
}

func (f *fakeSink) ResourceRequested(_ context.Context, sessionID, role, contact string) error {
	f.requests = append(f.requests, sessionID+"|"+role+"|"+contact)
	return f.err
}

func (f *fakeSink) VisitorMessageLeft(_ context.Context, sessionID, contact string) error {
	f.messages = append(f.messages, sessionID+"|"+contact)
	return f.err
}

func TestExecutorMirrorsEffectEvents(t *testing.T) {
	sink := &fakeSink{}
	ex := NewExecutor(&fakeSender{}, nil, &fakeCollector{}, &staticLinker{url: "https://x/dl"}, sink, logger.NewNopLogger())

	st := pendingTurn(
		state.Action{Type: constant.ActionSendResource, Params: map[string]string{"to": "a@b.test", "resource": "resume"}},
		state.Action{Type: constant.ActionCollectMessage, Params: map[string]string{"contact": "a@b.test"}},
	)
	ex.Run(context.Background(), "sess-1", st)

	assert.Equal(t, []string{"sess-1|recruiter|a@b.test"}, sink.requests)
	assert.Equal(t, []string{"sess-1|a@b.test"}, sink.messages)
}

func TestExecutorMirrorsRequestEvenWithoutMailChannel(t *testing.T) {
	sink := &fakeSink{}
	ex := NewExecutor(nil, nil, nil, nil, sink, logger.NewNopLogger())

	st := pendingTurn(state.Action{Type: constant.ActionSendResource, Params: map[string]string{"resource": "resume"}})
	sum := ex.Run(context.Background(), "sess-1", st)

	assert.Equal(t, Summary{Skipped: 1}, sum)
	assert.Len(t, sink.requests, 1, "the request happened regardless of delivery channels")
}

func TestExecutorSinkFailureDoesNotFailDispatch(t *testing.T) {
	sink := &fakeSink{err: errors.New("stream offline")}
	collector := &fakeCollector{}
	ex := NewExecutor(nil, nil, collector, nil, sink, logger.NewNopLogger())

	st := pendingTurn(state.Action{Type: constant.ActionCollectMessage, Params: map[string]string{"contact": "a@b.test"}})
	sum := ex.Run(context.Background(), "sess-1", st)

	assert.Equal(t, Summary{Executed: 1}, sum)
	assert.Equal(t, []string{"a@b.test"}, collector.contacts)
}
