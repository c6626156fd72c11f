// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/pkg/logger"
	"marketplace-billing-be/internal/pkg/mailer"
	"marketplace-billing-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process notification topic and delivers
// emails. Delivery is best effort: a failed send is logged and dropped,
// never retried into an inbox flood.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	mailer    mailer.IEmailService
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		mailer:    emailService,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.NotificationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal notification", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if payload.Email == "" {
		// Subscription has no billing contact; nothing to deliver.
		msg.Ack()
		return
	}

	var err error
	switch payload.EventType {
	case events.TypeInvoiceGenerated:
		err = cs.mailer.SendInvoiceIssued(payload.Email, payload.InvoiceNumber, payload.Amount, payload.DueDate)
	case events.TypePaymentValidated:
		err = cs.mailer.SendPaymentReceipt(payload.Email, payload.ReceiptNumber, payload.InvoiceNumber, payload.Amount)
	case events.TypeRenewalReminder:
		err = cs.mailer.SendRenewalReminder(payload.Email, payload.InvoiceNumber, payload.Amount, payload.DaysLeft)
	case events.TypeSubscriptionSuspended:
		err = cs.mailer.SendSuspensionNotice(payload.Email, payload.Reason)
	default:
		// Not an email-bearing event.
	}

	if err != nil {
		cs.logger.Warn("ConsumerService", "Email delivery failed", map[string]interface{}{
			"event": payload.EventType,
			"error": err.Error(),
		})
	}
	msg.Ack()
}
