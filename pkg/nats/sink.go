package nats

import (
	"context"

	"persona-chat-be/pkg/events"
)

// EventSink adapts the publisher to the executor's event-mirroring contract,
// turning side-effect dispatches into typed chat events on the stream.
type EventSink struct {
	pub *Publisher
}

func NewEventSink(pub *Publisher) *EventSink {
	return &EventSink{pub: pub}
}

func (s *EventSink) ResourceRequested(ctx context.Context, sessionID, role, contact string) error {
	return s.pub.Publish(ctx, events.NewResourceRequested(sessionID, role, contact))
}

func (s *EventSink) VisitorMessageLeft(ctx context.Context, sessionID, contact string) error {
	return s.pub.Publish(ctx, events.NewVisitorMessageLeft(sessionID, contact))
}
