package retrieve

import (
	"context"

	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/pkg/convo/state"
)

// DefaultTopK is how many passages one turn retrieves when unconfigured.
const DefaultTopK = 4

// Retriever is the external retrieval collaborator contract.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]state.RetrievedChunk, []float64, error)
}

// CodeSnippet is one code-index lookup result with its citation.
type CodeSnippet struct {
	Content  string
	Citation string
}

// CodeRetriever serves the second, code-scoped lookup used by snippet actions.
type CodeRetriever interface {
	RetrieveCode(ctx context.Context, query, role string) ([]CodeSnippet, error)
}

// Adapter is the pipeline stage that populates retrieval results on the turn
// state. It never fails the turn: collaborator errors become empty results and
// the low-confidence fallback downstream takes over.
type Adapter struct {
	retriever Retriever
	topK      int
	log       logger.ILogger
}

func NewAdapter(retriever Retriever, topK int, log logger.ILogger) *Adapter {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Adapter{
		retriever: retriever,
		topK:      topK,
		log:       log,
	}
}

// Run executes the retrieval stage for one turn.
func (a *Adapter) Run(ctx context.Context, st *state.TurnState) {
	chunks, scores, err := a.retriever.Retrieve(ctx, st.Query, a.topK)
	if err != nil {
		a.log.Warn("Retrieve", "Retrieval failed, proceeding with empty context", map[string]interface{}{"error": err.Error()})
		chunks, scores = nil, nil
	}
	if len(chunks) != len(scores) {
		a.log.Error("Retrieve", "Collaborator returned mismatched chunks/scores, dropping results", map[string]interface{}{
			"chunks": len(chunks),
			"scores": len(scores),
		})
		chunks, scores = nil, nil
	}
	if chunks == nil {
		chunks = []state.RetrievedChunk{}
	}
	if scores == nil {
		scores = []float64{}
	}
	_ = st.SetRetrieval(chunks, scores)
}
