// FILE: internal/service/reminder_service.go
package service

import (
	"context"
	"time"

	"marketplace-billing-be/internal/billing"
	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/pkg/logger"
	"marketplace-billing-be/internal/repository/specification"
	"marketplace-billing-be/internal/repository/unitofwork"
	"marketplace-billing-be/pkg/events"

	"github.com/google/uuid"
)

type IReminderService interface {
	// SendDueReminders emits renewal reminders for unpaid invoices whose
	// due date is one of the configured day-offsets away. Returns how
	// many reminders were sent.
	SendDueReminders(ctx context.Context, now time.Time) (int, error)
}

type reminderService struct {
	uowFactory unitofwork.RepositoryFactory
	notifier   *NotificationService
	logger     logger.ILogger
}

func NewReminderService(uowFactory unitofwork.RepositoryFactory, notifier *NotificationService, log logger.ILogger) IReminderService {
	return &reminderService{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     log,
	}
}

func (s *reminderService) SendDueReminders(ctx context.Context, now time.Time) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.SettingsRepository().Get(ctx)
	if err != nil {
		return 0, err
	}

	invoices, err := uow.InvoiceRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.InvoiceStatusPending)},
	)
	if err != nil {
		return 0, err
	}

	today := billing.TruncateToDay(now)
	sent := 0
	for _, invoice := range invoices {
		daysLeft := int(billing.TruncateToDay(invoice.DueDate).Sub(today).Hours() / 24)
		if daysLeft < 0 {
			continue
		}

		cycle, email, err := s.invoiceCycle(ctx, uow, invoice.SubscriptionId)
		if err != nil {
			s.logger.Error("ReminderService", "Cycle lookup failed", map[string]interface{}{
				"invoice_id": invoice.Id.String(),
				"error":      err.Error(),
			})
			continue
		}

		if !containsOffset(settings.ReminderDays[cycle], daysLeft) {
			continue
		}
		if err := s.sendOnce(ctx, invoice, daysLeft, email, now); err != nil {
			continue
		}
		sent++
	}
	return sent, nil
}

// sendOnce persists the dedup row before emitting; a conflict means a
// previous tick already sent this reminder.
func (s *reminderService) sendOnce(ctx context.Context, invoice *entity.Invoice, daysLeft int, email string, now time.Time) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.ReminderRepository().Create(ctx, &entity.InvoiceReminder{
		Id:         uuid.New(),
		InvoiceId:  invoice.Id,
		DaysBefore: daysLeft,
		SentAt:     now,
	})
	if err != nil {
		if dto.IsStateConflict(err) {
			return err
		}
		s.logger.Error("ReminderService", "Reminder dedup insert failed", map[string]interface{}{
			"invoice_id": invoice.Id.String(),
			"error":      err.Error(),
		})
		return err
	}

	s.notifier.Dispatch(ctx, events.TypeRenewalReminder, map[string]interface{}{
		"invoice_id":     invoice.Id.String(),
		"invoice_number": invoice.InvoiceNumber,
		"days_left":      daysLeft,
	}, &dto.NotificationMessage{
		Email:         email,
		InvoiceNumber: invoice.InvoiceNumber,
		Amount:        invoice.RemainingAmount(),
		DaysLeft:      daysLeft,
		DueDate:       invoice.DueDate.Format("2006-01-02"),
	})
	return nil
}

func (s *reminderService) invoiceCycle(ctx context.Context, uow unitofwork.UnitOfWork, subscriptionId uuid.UUID) (entity.BillingCycle, string, error) {
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: subscriptionId})
	if err != nil {
		return "", "", err
	}
	if sub == nil {
		return "", "", dto.NewNotFoundError("subscription", subscriptionId)
	}
	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return "", "", err
	}
	if plan == nil {
		return "", "", dto.NewNotFoundError("plan", sub.PlanId)
	}
	return plan.BillingCycle, sub.ContactEmail, nil
}

func containsOffset(offsets []int, days int) bool {
	for _, offset := range offsets {
		if offset == days {
			return true
		}
	}
	return false
}
