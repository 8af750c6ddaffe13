package service

import (
	"context"
	"fmt"
	"time"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/internal/repository/specification"
	"persona-chat-be/internal/repository/unitofwork"
	"persona-chat-be/pkg/embedding"
	"persona-chat-be/pkg/utils"

	"github.com/google/uuid"
)

const (
	// ChunkSize: 1500 chars (approx 375 tokens), overlap 200 to preserve
	// context across boundaries.
	ingestChunkSize    = 1500
	ingestChunkOverlap = 200
)

// IKnowledgeService ingests portfolio material into the retrieval indexes.
type IKnowledgeService interface {
	IngestDocument(ctx context.Context, sourceId, content string) (int, error)
	IngestCodeSample(ctx context.Context, sourceId, citation, content string) error
	ReplaceSource(ctx context.Context, sourceId string) error
	CountChunks(ctx context.Context, kind string) (int64, error)
}

type knowledgeService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	log               logger.ILogger
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		log:               log,
	}
}

// IngestDocument splits a document into chunks, embeds each one and stores
// them in the doc index. Returns the number of chunks written.
func (s *knowledgeService) IngestDocument(ctx context.Context, sourceId, content string) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunks := utils.SplitText(content, ingestChunkSize, ingestChunkOverlap)

	for i, chunkText := range chunks {
		res, err := s.embeddingProvider.Generate(chunkText, embedding.TaskTypeDocument)
		if err != nil {
			return i, fmt.Errorf("embedding failed for %s chunk %d: %w", sourceId, i, err)
		}

		chunk := &entity.KnowledgeChunk{
			Id:         uuid.New(),
			Kind:       entity.ChunkKindDoc,
			SourceID:   sourceId,
			Content:    chunkText,
			ChunkIndex: i,
			CreatedAt:  time.Now(),
		}
		if err := uow.KnowledgeChunkRepository().Create(ctx, chunk, res.Values); err != nil {
			return i, fmt.Errorf("failed to store %s chunk %d: %w", sourceId, i, err)
		}
	}

	s.log.Info("Knowledge", "Document ingested", map[string]interface{}{
		"source_id": sourceId,
		"chunks":    len(chunks),
	})
	return len(chunks), nil
}

// IngestCodeSample stores one code sample as a single chunk in the code
// index. Code samples are curated and small, so they are never split.
func (s *knowledgeService) IngestCodeSample(ctx context.Context, sourceId, citation, content string) error {
	res, err := s.embeddingProvider.Generate(content, embedding.TaskTypeDocument)
	if err != nil {
		return fmt.Errorf("embedding failed for code sample %s: %w", sourceId, err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunk := &entity.KnowledgeChunk{
		Id:        uuid.New(),
		Kind:      entity.ChunkKindCode,
		SourceID:  sourceId,
		Citation:  citation,
		Content:   content,
		CreatedAt: time.Now(),
	}
	return uow.KnowledgeChunkRepository().Create(ctx, chunk, res.Values)
}

// ReplaceSource drops every chunk of one source so it can be re-ingested.
func (s *knowledgeService) ReplaceSource(ctx context.Context, sourceId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.KnowledgeChunkRepository().DeleteBySourceId(ctx, sourceId)
}

func (s *knowledgeService) CountChunks(ctx context.Context, kind string) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.KnowledgeChunkRepository().Count(ctx, specification.ByKind{Kind: kind})
}
