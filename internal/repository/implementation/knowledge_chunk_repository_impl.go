package implementation

import (
	"context"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/mapper"
	"persona-chat-be/internal/model"
	"persona-chat-be/internal/repository/contract"
	"persona-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeChunkRepository(db *gorm.DB) contract.KnowledgeChunkRepository {
	return &KnowledgeChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeChunkRepositoryImpl) Create(ctx context.Context, chunk *entity.KnowledgeChunk, embedding []float32) error {
	m := r.mapper.ToModel(chunk, embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeChunkRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.KnowledgeChunk{}, id).Error
}

func (r *KnowledgeChunkRepositoryImpl) DeleteBySourceId(ctx context.Context, sourceId string) error {
	return r.db.WithContext(ctx).Where("source_id = ?", sourceId).Delete(&model.KnowledgeChunk{}).Error
}

func (r *KnowledgeChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error) {
	var models []*model.KnowledgeChunk
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.KnowledgeChunk, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *KnowledgeChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.KnowledgeChunk{}).Count(&count).Error
	return count, err
}

// scoredChunkRow carries the chunk plus the raw cosine distance from pgvector.
type scoredChunkRow struct {
	model.KnowledgeChunk
	Distance float64 `gorm:"column:distance"`
}

func (r *KnowledgeChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, kind string) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 4
	}

	var rows []scoredChunkRow

	// pgvector cosine distance: embedding <=> vector. Distance d in [0,2];
	// similarity is reported as 1-d clamped to [0,1].
	err := r.db.WithContext(ctx).
		Model(&model.KnowledgeChunk{}).
		Select("*, (embedding <=> ?) AS distance", pgvector.NewVector(embedding)).
		Where("kind = ?", kind).
		Where("deleted_at IS NULL").
		Order(gorm.Expr("embedding <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]*entity.ScoredChunk, len(rows))
	for i, row := range rows {
		score := 1.0 - row.Distance
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		results[i] = &entity.ScoredChunk{
			Chunk: *r.mapper.ToEntity(&row.KnowledgeChunk),
			Score: score,
		}
	}
	return results, nil
}
