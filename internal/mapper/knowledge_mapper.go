package mapper

import (
	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(c *model.KnowledgeChunk) *entity.KnowledgeChunk {
	if c == nil {
		return nil
	}
	return &entity.KnowledgeChunk{
		Id:         c.Id,
		Kind:       c.Kind,
		SourceID:   c.SourceID,
		Citation:   c.Citation,
		Content:    c.Content,
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}

// ToModel builds the storable chunk. The embedding is supplied separately
// because the entity never carries raw vectors.
func (m *KnowledgeMapper) ToModel(c *entity.KnowledgeChunk, embedding []float32) *model.KnowledgeChunk {
	if c == nil {
		return nil
	}
	return &model.KnowledgeChunk{
		Id:         c.Id,
		Kind:       c.Kind,
		SourceID:   c.SourceID,
		Citation:   c.Citation,
		Content:    c.Content,
		Embedding:  pgvector.NewVector(embedding),
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}
