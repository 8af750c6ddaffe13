package retrieve

import (
	"context"
	"errors"
	"testing"

	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/pkg/convo/state"

	"github.com/stretchr/testify/assert"
)

type stubRetriever struct {
	chunks []state.RetrievedChunk
	scores []float64
	err    error
	topK   int
}

func (s *stubRetriever) Retrieve(_ context.Context, _ string, topK int) ([]state.RetrievedChunk, []float64, error) {
	s.topK = topK
	return s.chunks, s.scores, s.err
}

func TestAdapterPopulatesTurnState(t *testing.T) {
	stub := &stubRetriever{
		chunks: []state.RetrievedChunk{
			{Text: "fact one", SourceID: "career-summary"},
			{Text: "fact two", SourceID: "stack-overview"},
		},
		scores: []float64{0.9, 0.7},
	}
	a := NewAdapter(stub, 3, logger.NewNopLogger())

	st := state.NewTurnState("recruiter", "what have you built", nil)
	a.Run(context.Background(), st)

	assert.Equal(t, 3, stub.topK)
	assert.Len(t, st.Chunks, 2)
	assert.Equal(t, []float64{0.9, 0.7}, st.Scores)
}

func TestAdapterErrorYieldsEmptyResults(t *testing.T) {
	stub := &stubRetriever{err: errors.New("index unavailable")}
	a := NewAdapter(stub, 4, logger.NewNopLogger())

	st := state.NewTurnState("visitor", "hello", nil)
	a.Run(context.Background(), st)

	assert.Empty(t, st.Chunks)
	assert.Empty(t, st.Scores)
}

func TestAdapterDropsMismatchedScores(t *testing.T) {
	stub := &stubRetriever{
		chunks: []state.RetrievedChunk{{Text: "fact", SourceID: "s"}},
		scores: []float64{0.8, 0.2},
	}
	a := NewAdapter(stub, 4, logger.NewNopLogger())

	st := state.NewTurnState("engineer", "how does retrieval work", nil)
	a.Run(context.Background(), st)

	assert.Empty(t, st.Chunks)
}

func TestAdapterDefaultsTopK(t *testing.T) {
	stub := &stubRetriever{}
	a := NewAdapter(stub, 0, logger.NewNopLogger())

	st := state.NewTurnState("visitor", "hi", nil)
	a.Run(context.Background(), st)

	assert.Equal(t, DefaultTopK, stub.topK)
}
