package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/pkg/convo/state"
	"persona-chat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, nil, opts...)
}

func newState(query string, scores []float64) *state.TurnState {
	st := state.NewTurnState(constant.RoleVisitor, query, nil)
	chunks := make([]state.RetrievedChunk, len(scores))
	for i := range scores {
		chunks[i] = state.RetrievedChunk{Text: "passage", SourceID: "doc-1"}
	}
	_ = st.SetRetrieval(chunks, scores)
	return st
}

func TestFallbackBoundary(t *testing.T) {
	tests := []struct {
		name         string
		scores       []float64
		wantFallback bool
	}{
		{name: "all scores below threshold", scores: []float64{0.35, 0.28}, wantFallback: true},
		{name: "single low score", scores: []float64{0.39}, wantFallback: true},
		{name: "score exactly at threshold does not trigger", scores: []float64{0.4}, wantFallback: false},
		{name: "one score above threshold", scores: []float64{0.1, 0.81}, wantFallback: false},
		{name: "empty scores never trigger", scores: []float64{}, wantFallback: false},
		{name: "healthy retrieval", scores: []float64{0.81, 0.77, 0.60}, wantFallback: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeLLM{response: "A grounded answer."}
			gen := NewGenerator(provider, DefaultFallbackThreshold, logger.NewNopLogger())

			st := newState("Tell me about experience", tt.scores)
			gen.Run(context.Background(), st)

			assert.Equal(t, tt.wantFallback, st.Stash.FallbackUsed)
			if tt.wantFallback {
				assert.Zero(t, provider.calls, "generation must be bypassed on fallback")
			} else {
				assert.Equal(t, 1, provider.calls)
				assert.Equal(t, "A grounded answer.", st.Answer)
			}
		})
	}
}

func TestFallbackMessageContents(t *testing.T) {
	gen := NewGenerator(&fakeLLM{}, DefaultFallbackThreshold, logger.NewNopLogger())

	st := newState("buisness", []float64{0.35, 0.28})
	gen.Run(context.Background(), st)

	assert.True(t, st.Stash.FallbackUsed)
	assert.Contains(t, st.Answer, `"buisness"`, "fallback must echo the literal query")

	suggestions := 0
	for _, line := range strings.Split(st.Answer, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "- ") {
			suggestions++
		}
	}
	assert.GreaterOrEqual(t, suggestions, 3, "fallback must offer at least 3 alternative topics")
}

func TestGenerationFailureBecomesApology(t *testing.T) {
	provider := &fakeLLM{err: errors.New("quota exceeded")}
	gen := NewGenerator(provider, DefaultFallbackThreshold, logger.NewNopLogger())

	st := newState("Tell me about experience", []float64{0.9})
	gen.Run(context.Background(), st)

	assert.True(t, st.Stash.GenerationFailed)
	assert.NotEmpty(t, st.Answer)
	assert.NotContains(t, st.Answer, "quota", "raw errors must never reach the answer")
}

func TestPersonaPromptSelection(t *testing.T) {
	var captured []llm.Message
	provider := &capturingLLM{response: "ok", captured: &captured}
	gen := NewGenerator(provider, DefaultFallbackThreshold, logger.NewNopLogger())

	st := state.NewTurnState(constant.RoleRecruiter, "Tell me about experience", nil)
	gen.Run(context.Background(), st)

	if assert.NotEmpty(t, captured) {
		assert.Equal(t, "system", captured[0].Role)
		assert.Equal(t, constant.PersonaPromptRecruiter, captured[0].Content)
	}
}

type capturingLLM struct {
	response string
	captured *[]llm.Message
}

func (c *capturingLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	*c.captured = history
	return c.response, nil
}

func (c *capturingLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return c.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
