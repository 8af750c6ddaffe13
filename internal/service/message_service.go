package service

import (
	"context"
	"time"

	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IMessageService persists the private messages visitors leave for the owner.
// It backs the collect_message effect action.
type IMessageService interface {
	Collect(ctx context.Context, sessionID, contact, body string) error
}

type messageService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewMessageService(uowFactory unitofwork.RepositoryFactory) IMessageService {
	return &messageService{uowFactory: uowFactory}
}

func (s *messageService) Collect(ctx context.Context, sessionID, contact, body string) error {
	sessionId, err := uuid.Parse(sessionID)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.VisitorMessageRepository().Create(ctx, &entity.VisitorMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Contact:       contact,
		Body:          body,
		CreatedAt:     time.Now(),
	})
}
