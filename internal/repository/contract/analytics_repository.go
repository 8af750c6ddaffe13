package contract

import (
	"context"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/repository/specification"
)

type TurnAnalyticsRepository interface {
	Create(ctx context.Context, record *entity.TurnAnalytics) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TurnAnalytics, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type VisitorMessageRepository interface {
	Create(ctx context.Context, message *entity.VisitorMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VisitorMessage, error)
}
