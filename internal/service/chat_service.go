package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"persona-chat-be/internal/constant"
	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/pkg/logger"
	"persona-chat-be/internal/repository/memory"
	"persona-chat-be/internal/repository/specification"
	"persona-chat-be/internal/repository/unitofwork"
	"persona-chat-be/pkg/convo/pipeline"
	"persona-chat-be/pkg/convo/state"
	"persona-chat-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context) ([]dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	SwitchRole(ctx context.Context, req *dto.SwitchRoleRequest) error
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
}

type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	sessionStore  memory.SessionStore
	pipeline      *pipeline.Pipeline
	pubSub        *gochannel.GoChannel
	historyWindow int
	log           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	sessionStore memory.SessionStore,
	turnPipeline *pipeline.Pipeline,
	pubSub *gochannel.GoChannel,
	historyWindow int,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:    uowFactory,
		sessionStore:  sessionStore,
		pipeline:      turnPipeline,
		pubSub:        pubSub,
		historyWindow: historyWindow,
		log:           log,
	}
}

func (s *chatService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	session := &entity.ChatSession{
		Id:        uuid.New(),
		Role:      req.Role,
		Title:     fmt.Sprintf("Chat as %s", req.Role),
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	if err := s.sessionStore.Save(ctx, store.NewSession(session.Id.String(), session.Role)); err != nil {
		s.log.Warn("ChatService", "Session state save failed on create", map[string]interface{}{"error": err.Error()})
	}

	return &dto.CreateSessionResponse{Id: session.Id, Role: session.Role}, nil
}

func (s *chatService) GetAllSessions(ctx context.Context) ([]dto.GetAllSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.GetAllSessionsResponse, 0, len(sessions))
	for _, cs := range sessions {
		res = append(res, dto.GetAllSessionsResponse{
			Id:        cs.Id,
			Role:      cs.Role,
			Title:     cs.Title,
			CreatedAt: cs.CreatedAt,
			UpdatedAt: cs.UpdatedAt,
		})
	}
	return res, nil
}

func (s *chatService) GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]dto.GetChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.GetChatHistoryResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, dto.GetChatHistoryResponse{
			Id:        m.Id,
			Role:      m.Role,
			Chat:      m.Chat,
			CreatedAt: m.CreatedAt,
		})
	}
	return res, nil
}

// SendChat runs one full conversation turn: rehydrate state, run the staged
// pipeline, persist both sides of the exchange, then hand analytics off to
// the event bus so the response is never blocked on bookkeeping.
func (s *chatService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: req.ChatSessionId})
	if err != nil {
		return nil, err
	}
	if chatSession == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "chat session not found")
	}

	history, err := s.loadHistory(ctx, uow, req.ChatSessionId)
	if err != nil {
		return nil, err
	}

	convSession, found := s.sessionStore.Get(ctx, req.ChatSessionId.String())
	if !found {
		// Store restart or TTL expiry: rebuild with a drained accumulator.
		convSession = store.NewSession(req.ChatSessionId.String(), chatSession.Role)
	}

	st := state.NewTurnStateWindowed(chatSession.Role, req.Chat, history, s.historyWindow)
	result := s.pipeline.Run(ctx, convSession, st)

	sent, reply, err := s.persistExchange(ctx, uow, req.ChatSessionId, req.Chat, result.Answer)
	if err != nil {
		return nil, err
	}

	if err := s.sessionStore.Save(ctx, convSession); err != nil {
		s.log.Warn("ChatService", "Session state save failed", map[string]interface{}{"error": err.Error()})
	}

	s.publishTurnCompleted(req.ChatSessionId, chatSession.Role, req.Chat, result)

	return &dto.SendChatResponse{
		ChatSessionId: req.ChatSessionId,
		Sent:          sent,
		Reply:         reply,
		QueryType:     result.QueryType,
		FallbackUsed:  result.FallbackUsed,
		Actions:       toActionDTOs(result.Actions),
	}, nil
}

func (s *chatService) SwitchRole(ctx context.Context, req *dto.SwitchRoleRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: req.ChatSessionId})
	if err != nil {
		return err
	}
	if chatSession == nil {
		return fiber.NewError(fiber.StatusNotFound, "chat session not found")
	}

	chatSession.Role = req.Role
	if err := uow.ChatSessionRepository().Update(ctx, chatSession); err != nil {
		return err
	}

	// The hiring-signal accumulator and offer flag survive the switch; only
	// the persona changes.
	if convSession, found := s.sessionStore.Get(ctx, req.ChatSessionId.String()); found {
		convSession.Role = req.Role
		if err := s.sessionStore.Save(ctx, convSession); err != nil {
			s.log.Warn("ChatService", "Session state save failed on role switch", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

func (s *chatService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	return s.sessionStore.Delete(ctx, sessionId.String())
}

func (s *chatService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]state.ChatEntry, error) {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	history := make([]state.ChatEntry, 0, len(messages))
	for _, m := range messages {
		history = append(history, state.ChatEntry{Speaker: m.Role, Text: m.Chat})
	}
	return history, nil
}

func (s *chatService) persistExchange(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	sessionId uuid.UUID,
	query, answer string,
) (*dto.SendChatResponseChat, *dto.SendChatResponseChat, error) {
	now := time.Now()
	userMsg := &entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          query,
		Role:          constant.ChatMessageRoleUser,
		ChatSessionId: sessionId,
		CreatedAt:     now,
	}
	modelMsg := &entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          answer,
		Role:          constant.ChatMessageRoleModel,
		ChatSessionId: sessionId,
		CreatedAt:     now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		uow.Rollback()
		return nil, nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, modelMsg); err != nil {
		uow.Rollback()
		return nil, nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, nil, err
	}

	sent := &dto.SendChatResponseChat{Id: userMsg.Id, Chat: userMsg.Chat, Role: userMsg.Role, CreatedAt: userMsg.CreatedAt}
	reply := &dto.SendChatResponseChat{Id: modelMsg.Id, Chat: modelMsg.Chat, Role: modelMsg.Role, CreatedAt: modelMsg.CreatedAt}
	return sent, reply, nil
}

func (s *chatService) publishTurnCompleted(sessionId uuid.UUID, role, query string, result *pipeline.Result) {
	payload := dto.TurnCompletedMessage{
		ChatSessionId: sessionId,
		Role:          role,
		Query:         query,
		QueryType:     result.QueryType,
		AnswerLen:     len(result.Answer),
		LatencyMs:     result.LatencyMs,
		Success:       !result.GenerationFailed,
		FallbackUsed:  result.FallbackUsed,
		Details: map[string]interface{}{
			"actions_planned":  len(result.Actions),
			"effects_executed": result.Execution.Executed,
			"effects_failed":   result.Execution.Failed,
			"effects_skipped":  result.Execution.Skipped,
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("ChatService", "Failed to marshal turn event", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := s.pubSub.Publish(constant.TopicTurnCompleted, msg); err != nil {
		s.log.Error("ChatService", "Failed to publish turn event", map[string]interface{}{"error": err.Error()})
	}
}

func toActionDTOs(actions []state.Action) []dto.PlannedActionDTO {
	res := make([]dto.PlannedActionDTO, 0, len(actions))
	for _, a := range actions {
		res = append(res, dto.PlannedActionDTO{Type: a.Type, Params: a.Params})
	}
	return res
}
