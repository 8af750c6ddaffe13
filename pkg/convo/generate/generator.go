package generate

import (
	"context"
	"fmt"
	"strings"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/pkg/convo/state"
	"persona-chat-be/pkg/llm"
)

// DefaultFallbackThreshold is the similarity floor below which a turn skips
// generation. Empirically chosen; configurable, pending product confirmation.
const DefaultFallbackThreshold = 0.4

// Apology returned when the generation collaborator errors out.
const apologyMessage = "Sorry, I ran into a problem putting an answer together. Please try again in a moment."

// Generator runs the generation stage: low-confidence fallback check, persona
// prompt composition, the LLM call, and output sanitation.
type Generator struct {
	llmProvider llm.LLMProvider
	threshold   float64
	log         logger.ILogger
}

func NewGenerator(llmProvider llm.LLMProvider, threshold float64, log logger.ILogger) *Generator {
	if threshold <= 0 {
		threshold = DefaultFallbackThreshold
	}
	return &Generator{
		llmProvider: llmProvider,
		threshold:   threshold,
		log:         log,
	}
}

// Run produces the base answer for the turn. It never returns an error: every
// failure path ends in a user-presentable message on the state.
func (g *Generator) Run(ctx context.Context, st *state.TurnState) {
	if g.shouldFallback(st.Scores) {
		st.Stash.FallbackUsed = true
		st.Answer = Sanitize(g.fallbackMessage(st.Query))
		g.log.Info("Generate", "Low-confidence retrieval, fallback answer used", map[string]interface{}{
			"scores": st.Scores,
		})
		return
	}

	history := g.buildHistory(st)
	raw, err := g.llmProvider.Chat(ctx, history)
	if err != nil {
		g.log.Error("Generate", "LLM generation failed", map[string]interface{}{"error": err.Error()})
		st.Stash.GenerationFailed = true
		st.Answer = apologyMessage
		return
	}

	st.Answer = Sanitize(raw)
}

// shouldFallback is true when scores exist and every one sits strictly below
// the threshold. A lone score exactly at the threshold does NOT trigger it.
func (g *Generator) shouldFallback(scores []float64) bool {
	if len(scores) == 0 {
		return false
	}
	for _, s := range scores {
		if s >= g.threshold {
			return false
		}
	}
	return true
}

// fallbackMessage acknowledges the miss, echoes the literal query, and offers
// alternative topics.
func (g *Generator) fallbackMessage(query string) string {
	var b strings.Builder
	b.WriteString("I couldn't confidently match anything in my knowledge base to: \"")
	b.WriteString(query)
	b.WriteString("\".\n\nHere are some things I can definitely help with:\n")
	for _, topic := range constant.FallbackTopicSuggestions {
		b.WriteString("- ")
		b.WriteString(topic)
		b.WriteString("\n")
	}
	b.WriteString("\nFeel free to rephrase, too - typos trip me up sometimes.")
	return b.String()
}

func (g *Generator) buildHistory(st *state.TurnState) []llm.Message {
	messages := make([]llm.Message, 0, len(st.History)+2)

	messages = append(messages, llm.Message{
		Role:    "system",
		Content: constant.PersonaPrompt(st.Role),
	})

	for _, entry := range st.History {
		role := "user"
		if entry.Speaker == constant.ChatMessageRoleModel {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: entry.Text})
	}

	messages = append(messages, llm.Message{
		Role:    "user",
		Content: g.buildGroundedPrompt(st),
	})
	return messages
}

func (g *Generator) buildGroundedPrompt(st *state.TurnState) string {
	var prompt strings.Builder

	prompt.WriteString("<reference_material>\n")
	if len(st.Chunks) == 0 {
		prompt.WriteString("(no passages retrieved for this question)\n")
	}
	for i, chunk := range st.Chunks {
		prompt.WriteString(fmt.Sprintf("--- PASSAGE %d (source: %s) ---\n", i+1, chunk.SourceID))
		prompt.WriteString(chunk.Text)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</reference_material>\n\n")

	prompt.WriteString("Answer the visitor's question using ONLY the reference material above. ")
	prompt.WriteString("If the material doesn't cover it, say so plainly.\n\n")
	prompt.WriteString("Question: ")
	prompt.WriteString(st.Query)

	return prompt.String()
}
