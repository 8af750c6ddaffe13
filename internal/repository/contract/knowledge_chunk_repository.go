package contract

import (
	"context"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeChunkRepository interface {
	Create(ctx context.Context, chunk *entity.KnowledgeChunk, embedding []float32) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySourceId(ctx context.Context, sourceId string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilarWithScore runs a pgvector cosine search over chunks of the
	// given kind and returns candidates with similarity scores in [0,1].
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, kind string) ([]*entity.ScoredChunk, error)
}
