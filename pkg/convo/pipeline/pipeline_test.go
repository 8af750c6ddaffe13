package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/pkg/convo/apply"
	"persona-chat-be/pkg/convo/execute"
	"persona-chat-be/pkg/convo/generate"
	"persona-chat-be/pkg/convo/retrieve"
	"persona-chat-be/pkg/convo/signal"
	"persona-chat-be/pkg/convo/state"
	"persona-chat-be/pkg/llm"
	"persona-chat-be/pkg/store"
)

type fixedRetriever struct {
	chunks []state.RetrievedChunk
	scores []float64
}

func (f *fixedRetriever) Retrieve(_ context.Context, _ string, _ int) ([]state.RetrievedChunk, []float64, error) {
	return f.chunks, f.scores, nil
}

type scriptedLLM struct {
	reply string
	calls int
}

func (s *scriptedLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	s.calls++
	return s.reply, nil
}

func (s *scriptedLLM) Generate(_ context.Context, _ string, _ ...llm.Option) (string, error) {
	s.calls++
	return s.reply, nil
}

type recordingNotifier struct{ reasons []string }

func (r *recordingNotifier) NotifyOwner(_ context.Context, reason, _ string) error {
	r.reasons = append(r.reasons, reason)
	return nil
}

func newTestPipeline(ret retrieve.Retriever, model llm.LLMProvider, notifier execute.OwnerNotifier) *Pipeline {
	log := logger.NewNopLogger()
	var notifiers []execute.OwnerNotifier
	if notifier != nil {
		notifiers = []execute.OwnerNotifier{notifier}
	}
	return NewPipeline(
		retrieve.NewAdapter(ret, retrieve.DefaultTopK, log),
		generate.NewGenerator(model, generate.DefaultFallbackThreshold, log),
		signal.NewDetector(signal.DefaultKindsRequired),
		apply.NewApplier(nil, nil, nil, log),
		execute.NewExecutor(nil, notifiers, nil, nil, nil, log),
		log,
	)
}

func TestRunNormalCareerTurn(t *testing.T) {
	ret := &fixedRetriever{
		chunks: []state.RetrievedChunk{
			{Text: "Eight years of backend work.", SourceID: "cv-1"},
			{Text: "Led a platform team of five.", SourceID: "cv-2"},
			{Text: "Speaks at Go meetups.", SourceID: "cv-3"},
		},
		scores: []float64{0.81, 0.77, 0.60},
	}
	model := &scriptedLLM{reply: "There's solid backend experience here, including platform team leadership."}
	p := newTestPipeline(ret, model, nil)

	session := store.NewSession("sess-1", constant.RoleRecruiter)
	st := state.NewTurnState(constant.RoleRecruiter, "tell me about your work experience", nil)
	st.Stash.ReportText = "Career summary: 8 years, two lead roles."

	res := p.Run(context.Background(), session, st)

	require.NotNil(t, res)
	assert.Equal(t, constant.QueryTypeCareer, res.QueryType)
	assert.False(t, res.FallbackUsed)
	assert.Equal(t, 1, model.calls, "grounded generation happens exactly once")
	assert.Contains(t, res.Answer, "platform team leadership")
	assert.Contains(t, res.Answer, "Career summary: 8 years")
	assert.Equal(t, 1, strings.Count(res.Answer, "?"), "answer carries exactly one follow-up question")
	assert.Equal(t, "tell me about your work experience", session.LastQuery)
}

func TestRunLowConfidenceFallback(t *testing.T) {
	ret := &fixedRetriever{
		chunks: []state.RetrievedChunk{
			{Text: "irrelevant", SourceID: "x"},
			{Text: "also irrelevant", SourceID: "y"},
		},
		scores: []float64{0.35, 0.28},
	}
	model := &scriptedLLM{reply: "should never be asked"}
	p := newTestPipeline(ret, model, nil)

	session := store.NewSession("sess-2", constant.RoleVisitor)
	st := state.NewTurnState(constant.RoleVisitor, "what about your buisness?", nil)

	res := p.Run(context.Background(), session, st)

	assert.True(t, res.FallbackUsed)
	assert.Zero(t, model.calls, "generation is bypassed when all scores sit below the threshold")
	assert.Contains(t, res.Answer, "buisness", "fallback echoes the visitor's own wording")
	assert.GreaterOrEqual(t, strings.Count(res.Answer, "- "), 3, "fallback lists topic suggestions")
}

func TestRunSubtleOfferFiresOncePerSession(t *testing.T) {
	ret := &fixedRetriever{
		chunks: []state.RetrievedChunk{{Text: "context", SourceID: "c"}},
		scores: []float64{0.9},
	}
	notifier := &recordingNotifier{}
	p := newTestPipeline(ret, &scriptedLLM{reply: "Happy to walk through that."}, notifier)

	session := store.NewSession("sess-3", constant.RoleRecruiter)

	turns := []string{
		"we're hiring for a backend role on my team",          // hiring intent + team reference
		"the position needs someone strong in Go and Postgres", // role description
		"anything else I should know?",
	}

	offers := 0
	for _, q := range turns {
		st := state.NewTurnState(constant.RoleRecruiter, q, nil)
		res := p.Run(context.Background(), session, st)
		for _, a := range res.Actions {
			if a.Type == constant.ActionOfferResource {
				offers++
				assert.Equal(t, constant.OfferModeSubtle, a.Params["mode"])
			}
		}
	}

	assert.Equal(t, 1, offers, "subtle offer surfaces exactly once per session")
	assert.True(t, session.ResourceOfferMade)
	assert.Equal(t, []string{"hiring_signal_detected"}, notifier.reasons)
}

func TestRunExplicitRequestPlansDelivery(t *testing.T) {
	ret := &fixedRetriever{
		chunks: []state.RetrievedChunk{{Text: "context", SourceID: "c"}},
		scores: []float64{0.9},
	}
	p := newTestPipeline(ret, &scriptedLLM{reply: "Of course."}, nil)

	session := store.NewSession("sess-4", constant.RoleRecruiter)
	st := state.NewTurnState(constant.RoleRecruiter, "please send me your resume, I'm at jane@acme.example", nil)

	res := p.Run(context.Background(), session, st)

	types := make(map[string]state.Action)
	for _, a := range res.Actions {
		types[a.Type] = a
	}
	require.Contains(t, types, constant.ActionOfferResource)
	assert.Equal(t, constant.OfferModeExplicit, types[constant.ActionOfferResource].Params["mode"])
	require.Contains(t, types, constant.ActionSendResource)
	assert.Equal(t, "jane@acme.example", types[constant.ActionSendResource].Params["to"])
	require.Contains(t, types, constant.ActionCollectMessage)
	assert.False(t, session.ResourceOfferMade, "explicit delivery leaves the subtle budget untouched")
	assert.Nil(t, st.Pending, "side-effects are cleared after execution")
}

func TestRunIsDeterministicAcrossIdenticalSessions(t *testing.T) {
	ret := &fixedRetriever{
		chunks: []state.RetrievedChunk{{Text: "pgvector search details", SourceID: "doc-1"}},
		scores: []float64{0.8},
	}

	run := func() *Result {
		p := newTestPipeline(ret, &scriptedLLM{reply: "The index uses cosine distance."}, nil)
		session := store.NewSession("sess-5", constant.RoleEngineer)
		st := state.NewTurnState(constant.RoleEngineer, "how does vector search work here?", nil)
		return p.Run(context.Background(), session, st)
	}

	first, second := run(), run()
	assert.Equal(t, first.Answer, second.Answer)
	assert.Equal(t, first.Actions, second.Actions)
	assert.Equal(t, first.QueryType, second.QueryType)
}

func TestStateSurvivesCheckpointMidPipeline(t *testing.T) {
	// A turn checkpointed after classification must resume identically.
	st := state.NewTurnState(constant.RoleEngineer, "show me the code for the retriever", nil)
	st.Stash.QueryType = constant.QueryTypeTechnical
	st.Stash.WantsCode = true

	data, err := st.Marshal()
	require.NoError(t, err)
	restored, err := state.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, st, restored)
}
