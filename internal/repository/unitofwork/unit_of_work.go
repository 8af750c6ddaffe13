package unitofwork

import (
	"context"

	"persona-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
	TurnAnalyticsRepository() contract.TurnAnalyticsRepository
	VisitorMessageRepository() contract.VisitorMessageRepository
}

// RepositoryFactory creates one UnitOfWork per request context.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
