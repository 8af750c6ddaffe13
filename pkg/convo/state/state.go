package state

import (
	"encoding/json"
	"fmt"
)

// ChatEntry is one prior exchange line carried into the turn.
type ChatEntry struct {
	Speaker string `json:"speaker"` // constant.ChatMessageRoleUser | ...RoleModel
	Text    string `json:"text"`
}

// RetrievedChunk is a knowledge-base passage returned by the retriever.
type RetrievedChunk struct {
	Text     string `json:"text"`
	SourceID string `json:"source_id"`
}

// Action is a planned, named side-effect or content request. Params are
// action-local contracts; the planner writes them, the applier/executor read.
type Action struct {
	Type   string            `json:"type"`
	Params map[string]string `json:"params,omitempty"`
}

// Stash holds per-turn flags and cached values. A typed side-table instead of
// a map[string]any so stage contracts stay visible at compile time.
type Stash struct {
	QueryType                string   `json:"query_type"`
	WantsCode                bool     `json:"wants_code"`
	WantsDependencyRationale bool     `json:"wants_dependency_rationale"`
	WantsData                bool     `json:"wants_data"`
	WantsResource            bool     `json:"wants_resource"`
	FallbackUsed             bool     `json:"fallback_used"`
	GenerationFailed         bool     `json:"generation_failed"`
	ContactEmail             string   `json:"contact_email,omitempty"`
	SignalKinds              []string `json:"signal_kinds,omitempty"`
	ReportText               string   `json:"report_text,omitempty"`
}

// TurnState is the single live state instance for one conversation turn.
// It is built fresh (or rehydrated) at the start of every turn and must never
// be shared across concurrent turns.
type TurnState struct {
	Role    string      `json:"role"`
	Query   string      `json:"query"`
	History []ChatEntry `json:"history,omitempty"`

	Chunks []RetrievedChunk `json:"chunks,omitempty"`
	Scores []float64        `json:"scores,omitempty"`

	Answer  string   `json:"answer,omitempty"`
	Stash   Stash    `json:"stash"`
	Pending []Action `json:"pending,omitempty"`
}

// HistoryWindow is the default bound on carried history entries.
const HistoryWindow = 10

// NewTurnState constructs a fresh state for one turn, trimming history to the
// most recent window entries.
func NewTurnState(role, query string, history []ChatEntry) *TurnState {
	return NewTurnStateWindowed(role, query, history, HistoryWindow)
}

// NewTurnStateWindowed is NewTurnState with a caller-supplied history bound,
// for deployments that tune the window. Non-positive falls back to the
// default.
func NewTurnStateWindowed(role, query string, history []ChatEntry, window int) *TurnState {
	if window <= 0 {
		window = HistoryWindow
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}
	return &TurnState{
		Role:    role,
		Query:   query,
		History: history,
	}
}

// SetRetrieval records the retriever output. Chunks and scores must stay
// parallel; mismatched lengths are a programming error upstream.
func (s *TurnState) SetRetrieval(chunks []RetrievedChunk, scores []float64) error {
	if len(chunks) != len(scores) {
		return fmt.Errorf("retrieval chunks/scores length mismatch: %d vs %d", len(chunks), len(scores))
	}
	s.Chunks = chunks
	s.Scores = scores
	return nil
}

// AppendAnswer concatenates a content block onto the running answer. Only the
// generator sets Answer; everything after it appends.
func (s *TurnState) AppendAnswer(block string) {
	if block == "" {
		return
	}
	if s.Answer != "" {
		s.Answer += "\n\n"
	}
	s.Answer += block
}

// ContextTexts returns the retrieved passages as plain strings for prompting.
func (s *TurnState) ContextTexts() []string {
	texts := make([]string, len(s.Chunks))
	for i, c := range s.Chunks {
		texts[i] = c.Text
	}
	return texts
}

// Marshal serializes the state so a turn can be checkpointed mid-pipeline and
// resumed with identical results.
func (s *TurnState) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal rehydrates a previously serialized state.
func Unmarshal(data []byte) (*TurnState, error) {
	var s TurnState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
