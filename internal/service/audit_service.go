// FILE: internal/service/audit_service.go
package service

import (
	"context"

	"marketplace-billing-be/internal/pkg/logger"
	"marketplace-billing-be/pkg/events"
	pktNats "marketplace-billing-be/pkg/nats"
)

// IAuditService mirrors every published billing event into the audit log,
// giving operators a durable trail of lifecycle and payment activity.
type IAuditService interface {
	Start() error
}

type auditService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewAuditService(subscriber *pktNats.Subscriber, log logger.ILogger) IAuditService {
	return &auditService{
		subscriber: subscriber,
		logger:     log,
	}
}

func (s *auditService) Start() error {
	if s.subscriber == nil {
		return nil
	}
	return s.subscriber.Subscribe("billing.>", "billing-audit", func(ctx context.Context, event events.Event) error {
		s.logger.Info("Audit", event.EventType(), event.Payload())
		return nil
	})
}
