package implementation

import (
	"context"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/mapper"
	"persona-chat-be/internal/model"
	"persona-chat-be/internal/repository/contract"
	"persona-chat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type TurnAnalyticsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnalyticsMapper
}

func NewTurnAnalyticsRepository(db *gorm.DB) contract.TurnAnalyticsRepository {
	return &TurnAnalyticsRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnalyticsMapper(),
	}
}

func (r *TurnAnalyticsRepositoryImpl) Create(ctx context.Context, record *entity.TurnAnalytics) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *TurnAnalyticsRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TurnAnalytics, error) {
	var models []*model.TurnAnalytics
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.TurnAnalytics, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *TurnAnalyticsRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.TurnAnalytics{}).Count(&count).Error
	return count, err
}

type VisitorMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnalyticsMapper
}

func NewVisitorMessageRepository(db *gorm.DB) contract.VisitorMessageRepository {
	return &VisitorMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnalyticsMapper(),
	}
}

func (r *VisitorMessageRepositoryImpl) Create(ctx context.Context, message *entity.VisitorMessage) error {
	m := r.mapper.VisitorMessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.VisitorMessageToEntity(m)
	return nil
}

func (r *VisitorMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VisitorMessage, error) {
	var models []*model.VisitorMessage
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.VisitorMessage, len(models))
	for i, m := range models {
		entities[i] = r.mapper.VisitorMessageToEntity(m)
	}
	return entities, nil
}
