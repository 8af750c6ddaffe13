package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"persona-chat-be/internal/dto"
	"persona-chat-be/internal/entity"
	"persona-chat-be/internal/repository/unitofwork"
	"persona-chat-be/pkg/events"
	natsbus "persona-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains turn-completed events off the in-process bus,
// persists the analytics row, and mirrors the event to NATS when an external
// bus is configured.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	natsPub    *natsbus.Publisher // nil when NATS is not configured
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	natsPub *natsbus.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		natsPub:    natsPub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.TurnCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal turn event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	record := &entity.TurnAnalytics{
		Id:            uuid.New(),
		ChatSessionId: payload.ChatSessionId,
		Role:          payload.Role,
		Query:         payload.Query,
		QueryType:     payload.QueryType,
		AnswerLen:     payload.AnswerLen,
		LatencyMs:     payload.LatencyMs,
		Success:       payload.Success,
		FallbackUsed:  payload.FallbackUsed,
		Details:       payload.Details,
		CreatedAt:     time.Now(),
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.TurnAnalyticsRepository().Create(ctx, record); err != nil {
		log.Printf("[ERROR] Failed to persist turn analytics: %v", err)
		msg.Nack() // Retriable: the row can be written on redelivery
		return
	}

	if cs.natsPub != nil {
		event := events.NewTurnCompleted(
			payload.ChatSessionId.String(),
			payload.Role,
			payload.QueryType,
			payload.LatencyMs,
			payload.FallbackUsed,
			intDetail(payload.Details, "actions_planned"),
		)
		if err := cs.natsPub.Publish(ctx, event); err != nil {
			// External mirror is best-effort; the row is already persisted.
			log.Printf("[WARN] Failed to mirror turn event to NATS: %v", err)
		}
	}

	msg.Ack()
}

func intDetail(details map[string]interface{}, key string) int {
	switch v := details[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
