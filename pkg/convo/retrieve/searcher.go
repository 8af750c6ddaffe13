package retrieve

import (
	"context"
	"fmt"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/internal/repository/contract"
	"persona-chat-be/pkg/convo/state"
	"persona-chat-be/pkg/embedding"
)

// Searcher is the production Retriever: embeds the query and runs a pgvector
// cosine search over the knowledge-chunk index.
type Searcher struct {
	embeddingProvider embedding.EmbeddingProvider
	chunkRepo         contract.KnowledgeChunkRepository
	log               logger.ILogger
}

func NewSearcher(
	embeddingProvider embedding.EmbeddingProvider,
	chunkRepo contract.KnowledgeChunkRepository,
	log logger.ILogger,
) *Searcher {
	return &Searcher{
		embeddingProvider: embeddingProvider,
		chunkRepo:         chunkRepo,
		log:               log,
	}
}

func (s *Searcher) Retrieve(ctx context.Context, query string, topK int) ([]state.RetrievedChunk, []float64, error) {
	scored, err := s.search(ctx, query, topK, entity.ChunkKindDoc)
	if err != nil {
		return nil, nil, err
	}

	chunks := make([]state.RetrievedChunk, len(scored))
	scores := make([]float64, len(scored))
	for i, sc := range scored {
		chunks[i] = state.RetrievedChunk{
			Text:     sc.Chunk.Content,
			SourceID: sc.Chunk.SourceID,
		}
		scores[i] = sc.Score
	}
	return chunks, scores, nil
}

// RetrieveCode searches the code index. The role is logged for observability
// but does not change the search itself.
func (s *Searcher) RetrieveCode(ctx context.Context, query, role string) ([]CodeSnippet, error) {
	scored, err := s.search(ctx, query, DefaultTopK, entity.ChunkKindCode)
	if err != nil {
		return nil, err
	}

	s.log.Debug("Retrieve", "Code index lookup", map[string]interface{}{
		"role":    role,
		"results": len(scored),
	})

	snippets := make([]CodeSnippet, len(scored))
	for i, sc := range scored {
		snippets[i] = CodeSnippet{
			Content:  sc.Chunk.Content,
			Citation: sc.Chunk.Citation,
		}
	}
	return snippets, nil
}

func (s *Searcher) search(ctx context.Context, query string, topK int, kind string) ([]*entity.ScoredChunk, error) {
	embeddingRes, err := s.embeddingProvider.Generate(query, embedding.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	scored, err := s.chunkRepo.SearchSimilarWithScore(ctx, embeddingRes.Values, topK, kind)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	return scored, nil
}
