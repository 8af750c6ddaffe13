package state

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTurnStateTrimsHistory(t *testing.T) {
	var history []ChatEntry
	for i := 0; i < HistoryWindow+5; i++ {
		history = append(history, ChatEntry{Speaker: "user", Text: fmt.Sprintf("m%d", i)})
	}

	st := NewTurnState("engineer", "q", history)

	require.Len(t, st.History, HistoryWindow)
	assert.Equal(t, "m5", st.History[0].Text, "oldest entries beyond the window are dropped")
	assert.Equal(t, fmt.Sprintf("m%d", HistoryWindow+4), st.History[len(st.History)-1].Text)
}

func TestNewTurnStateWindowedHonorsConfiguredWindow(t *testing.T) {
	var history []ChatEntry
	for i := 0; i < 6; i++ {
		history = append(history, ChatEntry{Speaker: "user", Text: fmt.Sprintf("m%d", i)})
	}

	st := NewTurnStateWindowed("engineer", "q", history, 2)
	require.Len(t, st.History, 2)
	assert.Equal(t, "m4", st.History[0].Text)
	assert.Equal(t, "m5", st.History[1].Text)

	st = NewTurnStateWindowed("engineer", "q", history, 0)
	assert.Len(t, st.History, 6, "non-positive window falls back to the default bound")
}

func TestSetRetrievalRejectsMismatch(t *testing.T) {
	st := NewTurnState("engineer", "q", nil)

	err := st.SetRetrieval([]RetrievedChunk{{Text: "a"}}, []float64{0.9, 0.8})
	assert.Error(t, err)

	err = st.SetRetrieval([]RetrievedChunk{{Text: "a"}}, []float64{0.9})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, st.ContextTexts())
}

func TestAppendAnswerJoinsBlocks(t *testing.T) {
	st := NewTurnState("engineer", "q", nil)

	st.AppendAnswer("first block")
	st.AppendAnswer("")
	st.AppendAnswer("second block")

	assert.Equal(t, "first block\n\nsecond block", st.Answer)
}

func TestMarshalRoundTrip(t *testing.T) {
	st := NewTurnState("recruiter", "tell me about the stack", []ChatEntry{{Speaker: "user", Text: "hi"}})
	require.NoError(t, st.SetRetrieval(
		[]RetrievedChunk{{Text: "chunk", SourceID: "doc-1"}},
		[]float64{0.73},
	))
	st.Answer = "partial answer"
	st.Stash.QueryType = "technical"
	st.Stash.SignalKinds = []string{"hiring_intent"}
	st.Pending = []Action{{Type: "notify_owner", Params: map[string]string{"reason": "hiring_signal_detected"}}}

	data, err := st.Marshal()
	require.NoError(t, err)

	restored, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, st, restored)
}
