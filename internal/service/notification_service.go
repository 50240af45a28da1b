package service

import (
	"context"

	"course-copilot-be/internal/pkg/logger"
	"course-copilot-be/internal/websocket"
	"course-copilot-be/pkg/events"
	pkgNats "course-copilot-be/pkg/nats"
)

// NotificationService bridges the event bus and the staff websocket feed.
// Every subscribed event ends up broadcast to all connected staff.
type NotificationService struct {
	subscriber *pkgNats.Subscriber
	hub        *websocket.Hub
	log        logger.ILogger
}

func NewNotificationService(subscriber *pkgNats.Subscriber, hub *websocket.Hub, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: subscriber,
		hub:        hub,
		log:        log,
	}
}

// Start registers durable consumers for the staff-facing event types.
// Durable names keep each instance's cursor across restarts.
func (s *NotificationService) Start() {
	subscriptions := map[string]string{
		events.TypeDocumentIndexed: "ops-feed-doc-indexed",
		events.TypeDocumentFailed:  "ops-feed-doc-failed",
		events.TypeMessageFlagged:  "ops-feed-msg-flagged",
		events.TypeUpdatePublished: "ops-feed-update-published",
	}

	for eventType, durable := range subscriptions {
		if err := s.subscriber.Subscribe(eventType, durable, s.handleEvent); err != nil {
			s.log.Error("Notification", "Failed to subscribe", map[string]interface{}{
				"event_type": eventType,
				"error":      err.Error(),
			})
		}
	}
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	s.hub.Broadcast(event.EventType(), event.Payload())
	return nil
}
