// FILE: internal/service/notification_service.go
package service

import (
	"context"
	"encoding/json"

	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/pkg/logger"
	"marketplace-billing-be/pkg/events"
	pktNats "marketplace-billing-be/pkg/nats" // Renamed to avoid collision

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NotificationService fans billing lifecycle events out to the NATS bus
// (for external consumers) and to the in-process dispatch topic (for email
// delivery). Dispatch is best effort: a dead broker never fails the
// billing operation that triggered it.
type NotificationService struct {
	publisher *pktNats.Publisher
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewNotificationService(publisher *pktNats.Publisher, pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) *NotificationService {
	return &NotificationService{
		publisher: publisher,
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

// Dispatch publishes the event externally and, when msg is non-nil,
// queues an email notification for the consumer worker.
func (s *NotificationService) Dispatch(ctx context.Context, eventType string, payload map[string]interface{}, msg *dto.NotificationMessage) {
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.New(eventType, payload)); err != nil {
			s.logger.Warn("NotificationService", "Failed to publish event", map[string]interface{}{
				"event": eventType,
				"error": err.Error(),
			})
		}
	}

	if s.pubSub == nil || msg == nil {
		return
	}
	msg.EventType = eventType
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to marshal notification message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), data)); err != nil {
		s.logger.Warn("NotificationService", "Failed to queue notification", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
