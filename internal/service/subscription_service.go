// FILE: internal/service/subscription_service.go
package service

import (
	"context"
	"time"

	"marketplace-billing-be/internal/billing"
	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/pkg/clock"
	"marketplace-billing-be/internal/pkg/logger"
	"marketplace-billing-be/internal/repository/specification"
	"marketplace-billing-be/internal/repository/unitofwork"
	"marketplace-billing-be/pkg/events"

	"github.com/google/uuid"
)

type ISubscriptionService interface {
	Subscribe(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	GetSubscription(ctx context.Context, id uuid.UUID) (*dto.SubscriptionResponse, error)
	GetCurrentForOrganization(ctx context.Context, organizationId uuid.UUID) (*dto.SubscriptionResponse, error)
	ListForOrganization(ctx context.Context, organizationId uuid.UUID) ([]*dto.SubscriptionResponse, error)

	Suspend(ctx context.Context, id uuid.UUID, req *dto.SuspendSubscriptionRequest) (*dto.SubscriptionResponse, error)
	Reactivate(ctx context.Context, id uuid.UUID) (*dto.SubscriptionResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelSubscriptionRequest) (*dto.SubscriptionResponse, error)

	// Scheduler entry points. Each returns how many subscriptions it touched.
	ExpireTrials(ctx context.Context, now time.Time) (int, error)
	RolloverDueSubscriptions(ctx context.Context, now time.Time) (int, error)
	SuspendDelinquent(ctx context.Context, now time.Time) (int, error)
}

type subscriptionService struct {
	uowFactory unitofwork.RepositoryFactory
	invoices   IInvoiceService
	notifier   *NotificationService
	clock      clock.Clock
	logger     logger.ILogger
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	invoices IInvoiceService,
	notifier *NotificationService,
	clk clock.Clock,
	log logger.ILogger,
) ISubscriptionService {
	return &subscriptionService{
		uowFactory: uowFactory,
		invoices:   invoices,
		notifier:   notifier,
		clock:      clk,
		logger:     log,
	}
}

// Subscribe opens a trial subscription for an organization, books the
// zero-amount trial invoice and the prorated first invoice in the same
// transaction. Free months apply to the organization's first-ever
// subscription only; re-subscribers pay from day one.
func (s *subscriptionService) Subscribe(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	sub, plan, invoice, err := s.subscribeTx(ctx, uow, req)
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("SubscriptionService", "Subscription created", map[string]interface{}{
		"subscription_id": sub.Id.String(),
		"organization_id": sub.OrganizationId.String(),
		"plan":            plan.Slug,
	})
	s.notifier.Dispatch(ctx, events.TypeSubscriptionCreated, map[string]interface{}{
		"subscription_id": sub.Id.String(),
		"organization_id": sub.OrganizationId.String(),
		"plan_slug":       plan.Slug,
		"trial_end_date":  sub.TrialEndDate.Format(time.RFC3339),
	}, nil)
	s.notifier.Dispatch(ctx, events.TypeInvoiceGenerated, map[string]interface{}{
		"invoice_id":     invoice.Id.String(),
		"invoice_number": invoice.InvoiceNumber,
		"amount":         invoice.Amount,
	}, &dto.NotificationMessage{
		Email:         sub.ContactEmail,
		InvoiceNumber: invoice.InvoiceNumber,
		Amount:        invoice.Amount,
		DueDate:       invoice.DueDate.Format("2006-01-02"),
	})

	res := toSubscriptionResponse(sub)
	res.PlanName = plan.Name
	return res, nil
}

func (s *subscriptionService) subscribeTx(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.CreateSubscriptionRequest) (*entity.Subscription, *entity.Plan, *entity.Invoice, error) {
	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, nil, nil, err
	}
	if plan == nil {
		return nil, nil, nil, dto.NewNotFoundError("plan", req.PlanId)
	}
	if !plan.IsActive {
		return nil, nil, nil, dto.NewStateConflictError("plan %s is not open for subscription", plan.Slug)
	}

	current, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.OrganizationOwnedBy{OrganizationID: req.OrganizationId},
		specification.CurrentOnly{},
	)
	if err != nil {
		return nil, nil, nil, err
	}
	if current != nil {
		return nil, nil, nil, dto.NewStateConflictError("organization already has a current subscription")
	}

	settings, err := uow.SettingsRepository().Get(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	// Free months only for organizations we have never billed before.
	previous, err := uow.SubscriptionRepository().Count(ctx,
		specification.OrganizationOwnedBy{OrganizationID: req.OrganizationId})
	if err != nil {
		return nil, nil, nil, err
	}
	freeMonths := 0
	if previous == 0 {
		freeMonths = plan.FreeMonths
	}

	now := s.clock.Now()
	trialStart := billing.TruncateToDay(now)
	trialEnd := trialStart.AddDate(0, 0, settings.TrialDurationDays)

	prorata, err := billing.ComputeProrata(plan, trialEnd)
	if err != nil {
		return nil, nil, nil, err
	}

	sub := &entity.Subscription{
		Id:                  uuid.New(),
		OrganizationId:      req.OrganizationId,
		PlanId:              plan.Id,
		ContactEmail:        req.ContactEmail,
		Status:              entity.SubscriptionStatusTrial,
		IsCurrent:           true,
		SubscribedAt:        now,
		TrialStartDate:      trialStart,
		TrialEndDate:        trialEnd,
		CurrentPeriodEnd:    prorata.PeriodEnd,
		NextBillingDate:     prorata.PeriodEnd.AddDate(0, 0, 1),
		FreeMonthsRemaining: freeMonths,
	}

	if err := uow.SubscriptionRepository().Create(ctx, sub); err != nil {
		return nil, nil, nil, err
	}

	if _, err := s.invoices.IssueTrialInvoice(ctx, uow, sub); err != nil {
		return nil, nil, nil, err
	}

	invoice, prorata, err := s.invoices.IssueInitialInvoice(ctx, uow, sub, plan)
	if err != nil {
		return nil, nil, nil, err
	}

	sub.AmountDue = invoice.RemainingAmount()
	sub.IsProrata = invoice.IsProrata
	sub.ProrataDays = prorata.DaysCalculated
	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		return nil, nil, nil, err
	}

	return sub, plan, invoice, nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, dto.NewNotFoundError("subscription", id)
	}
	return toSubscriptionResponse(sub), nil
}

func (s *subscriptionService) GetCurrentForOrganization(ctx context.Context, organizationId uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.OrganizationOwnedBy{OrganizationID: organizationId},
		specification.CurrentOnly{},
	)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, dto.NewNotFoundError("subscription", organizationId)
	}
	return toSubscriptionResponse(sub), nil
}

func (s *subscriptionService) ListForOrganization(ctx context.Context, organizationId uuid.UUID) ([]*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	subs, err := uow.SubscriptionRepository().FindAll(ctx,
		specification.OrganizationOwnedBy{OrganizationID: organizationId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		result = append(result, toSubscriptionResponse(sub))
	}
	return result, nil
}

func (s *subscriptionService) Suspend(ctx context.Context, id uuid.UUID, req *dto.SuspendSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	sub, err := s.transition(ctx, id, entity.SubscriptionStatusSuspended, func(sub *entity.Subscription) {
		sub.SuspensionReason = req.Reason
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, events.TypeSubscriptionSuspended, map[string]interface{}{
		"subscription_id": sub.Id.String(),
		"reason":          req.Reason,
	}, &dto.NotificationMessage{Email: sub.ContactEmail, Reason: req.Reason})
	return toSubscriptionResponse(sub), nil
}

// Reactivate brings a suspended subscription back to active. When the
// settings flag requires it, all invoices must be settled first.
func (s *subscriptionService) Reactivate(ctx context.Context, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id}, specification.ForUpdate{})
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if sub == nil {
		_ = uow.Rollback()
		return nil, dto.NewNotFoundError("subscription", id)
	}
	if !sub.CanTransitionTo(entity.SubscriptionStatusActive) {
		_ = uow.Rollback()
		return nil, dto.NewStateConflictError("cannot reactivate subscription in status %s", sub.Status)
	}

	settings, err := uow.SettingsRepository().Get(ctx)
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if settings.RequireSettledOnReactivate {
		open, err := uow.InvoiceRepository().Count(ctx,
			specification.BySubscriptionID{SubscriptionID: sub.Id},
			specification.StatusIn{Statuses: []string{
				string(entity.InvoiceStatusPending),
				string(entity.InvoiceStatusOverdue),
			}},
		)
		if err != nil {
			_ = uow.Rollback()
			return nil, err
		}
		if open > 0 {
			_ = uow.Rollback()
			return nil, dto.NewStateConflictError("subscription has %d unsettled invoices", open)
		}
	}

	sub.Status = entity.SubscriptionStatusActive
	sub.SuspensionReason = ""
	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, events.TypeSubscriptionReactivated, map[string]interface{}{
		"subscription_id": sub.Id.String(),
	}, nil)
	return toSubscriptionResponse(sub), nil
}

// Cancel is terminal and frees the organization's current-subscription
// slot. The subscription row itself is kept as history.
func (s *subscriptionService) Cancel(ctx context.Context, id uuid.UUID, req *dto.CancelSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	now := s.clock.Now()
	sub, err := s.transition(ctx, id, entity.SubscriptionStatusCancelled, func(sub *entity.Subscription) {
		sub.IsCurrent = false
		sub.CancelledAt = &now
		sub.CancellationReason = req.Reason
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, events.TypeSubscriptionCancelled, map[string]interface{}{
		"subscription_id": sub.Id.String(),
		"reason":          req.Reason,
	}, nil)
	return toSubscriptionResponse(sub), nil
}

// transition applies a lifecycle move under a row lock, enforcing the
// state machine before mutating.
func (s *subscriptionService) transition(ctx context.Context, id uuid.UUID, next entity.SubscriptionStatus, mutate func(*entity.Subscription)) (*entity.Subscription, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id}, specification.ForUpdate{})
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if sub == nil {
		_ = uow.Rollback()
		return nil, dto.NewNotFoundError("subscription", id)
	}
	if !sub.CanTransitionTo(next) {
		_ = uow.Rollback()
		return nil, dto.NewStateConflictError("invalid transition %s -> %s", sub.Status, next)
	}

	sub.Status = next
	if mutate != nil {
		mutate(sub)
	}
	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return sub, nil
}

// ExpireTrials moves subscriptions past their trial end date out of trial:
// to active when nothing is owed, to pending_payment otherwise.
func (s *subscriptionService) ExpireTrials(ctx context.Context, now time.Time) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	expiring, err := uow.SubscriptionRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.SubscriptionStatusTrial)},
	)
	if err != nil {
		return 0, err
	}

	touched := 0
	for _, candidate := range expiring {
		if candidate.TrialEndDate.After(now) {
			continue
		}
		if err := s.expireTrial(ctx, candidate.Id, now); err != nil {
			s.logger.Error("SubscriptionService", "Trial expiry failed", map[string]interface{}{
				"subscription_id": candidate.Id.String(),
				"error":           err.Error(),
			})
			continue
		}
		touched++
	}
	return touched, nil
}

func (s *subscriptionService) expireTrial(ctx context.Context, id uuid.UUID, now time.Time) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id}, specification.ForUpdate{})
	if err != nil {
		_ = uow.Rollback()
		return err
	}
	if sub == nil || sub.Status != entity.SubscriptionStatusTrial || sub.TrialEndDate.After(now) {
		_ = uow.Rollback()
		return nil
	}

	open, err := uow.InvoiceRepository().Count(ctx,
		specification.BySubscriptionID{SubscriptionID: sub.Id},
		specification.StatusIn{Statuses: []string{
			string(entity.InvoiceStatusPending),
			string(entity.InvoiceStatusOverdue),
		}},
	)
	if err != nil {
		_ = uow.Rollback()
		return err
	}

	if open == 0 {
		sub.Status = entity.SubscriptionStatusActive
	} else {
		sub.Status = entity.SubscriptionStatusPendingPayment
	}
	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.notifier.Dispatch(ctx, events.TypeTrialExpired, map[string]interface{}{
		"subscription_id": sub.Id.String(),
		"new_status":      string(sub.Status),
	}, nil)
	return nil
}

// RolloverDueSubscriptions issues the next full-period invoice for every
// subscription whose billing date has arrived and advances its period
// anchors. A duplicate run is harmless: the periodic invoice is issued
// idempotently and anchors only move forward.
func (s *subscriptionService) RolloverDueSubscriptions(ctx context.Context, now time.Time) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	due, err := uow.SubscriptionRepository().FindAll(ctx,
		specification.StatusIn{Statuses: []string{
			string(entity.SubscriptionStatusActive),
			string(entity.SubscriptionStatusPendingPayment),
		}},
		specification.NextBillingDue{Now: now},
	)
	if err != nil {
		return 0, err
	}

	touched := 0
	for _, candidate := range due {
		if err := s.rollover(ctx, candidate.Id, now); err != nil {
			s.logger.Error("SubscriptionService", "Rollover failed", map[string]interface{}{
				"subscription_id": candidate.Id.String(),
				"error":           err.Error(),
			})
			continue
		}
		touched++
	}
	return touched, nil
}

func (s *subscriptionService) rollover(ctx context.Context, id uuid.UUID, now time.Time) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id}, specification.ForUpdate{})
	if err != nil {
		_ = uow.Rollback()
		return err
	}
	if sub == nil || sub.NextBillingDate.After(now) {
		_ = uow.Rollback()
		return nil
	}
	if sub.Status != entity.SubscriptionStatusActive && sub.Status != entity.SubscriptionStatusPendingPayment {
		_ = uow.Rollback()
		return nil
	}

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		_ = uow.Rollback()
		return err
	}
	if plan == nil {
		_ = uow.Rollback()
		return dto.NewNotFoundError("plan", sub.PlanId)
	}

	invoice, created, err := s.invoices.IssuePeriodicInvoice(ctx, uow, sub, plan, sub.NextBillingDate)
	if err != nil {
		_ = uow.Rollback()
		return err
	}

	periodEnd, _, err := billing.NextPeriod(plan.BillingCycle, sub.NextBillingDate)
	if err != nil {
		_ = uow.Rollback()
		return err
	}
	sub.CurrentPeriodEnd = periodEnd
	sub.NextBillingDate = periodEnd.AddDate(0, 0, 1)
	sub.AmountDue += invoice.RemainingAmount()
	sub.IsProrata = false
	sub.ProrataDays = 0
	if invoice.RemainingAmount() > 0 && sub.Status == entity.SubscriptionStatusActive {
		sub.Status = entity.SubscriptionStatusPendingPayment
	}
	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if created {
		s.notifier.Dispatch(ctx, events.TypeInvoiceGenerated, map[string]interface{}{
			"invoice_id":     invoice.Id.String(),
			"invoice_number": invoice.InvoiceNumber,
			"amount":         invoice.Amount,
		}, &dto.NotificationMessage{
			Email:         sub.ContactEmail,
			InvoiceNumber: invoice.InvoiceNumber,
			Amount:        invoice.Amount,
			DueDate:       invoice.DueDate.Format("2006-01-02"),
		})
	}
	return nil
}

// SuspendDelinquent suspends subscriptions that still owe money once the
// grace period after an invoice due date has elapsed. Disabled entirely
// when auto-suspension is turned off in settings.
func (s *subscriptionService) SuspendDelinquent(ctx context.Context, now time.Time) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	settings, err := uow.SettingsRepository().Get(ctx)
	if err != nil {
		return 0, err
	}
	if !settings.AutoSuspendAfterTrial {
		return 0, nil
	}

	candidates, err := uow.SubscriptionRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.SubscriptionStatusPendingPayment)},
	)
	if err != nil {
		return 0, err
	}

	cutoff := billing.TruncateToDay(now).AddDate(0, 0, -settings.GracePeriodDays)
	touched := 0
	for _, candidate := range candidates {
		overdue, err := uow.InvoiceRepository().Count(ctx,
			specification.BySubscriptionID{SubscriptionID: candidate.Id},
			specification.StatusIn{Statuses: []string{
				string(entity.InvoiceStatusPending),
				string(entity.InvoiceStatusOverdue),
			}},
			specification.DueOnOrBefore{Date: cutoff},
		)
		if err != nil {
			return touched, err
		}
		if overdue == 0 {
			continue
		}

		if _, err := s.Suspend(ctx, candidate.Id, &dto.SuspendSubscriptionRequest{
			Reason: "payment overdue beyond grace period",
		}); err != nil {
			s.logger.Error("SubscriptionService", "Auto-suspension failed", map[string]interface{}{
				"subscription_id": candidate.Id.String(),
				"error":           err.Error(),
			})
			continue
		}
		touched++
	}
	return touched, nil
}

func toSubscriptionResponse(s *entity.Subscription) *dto.SubscriptionResponse {
	return &dto.SubscriptionResponse{
		Id:                  s.Id,
		OrganizationId:      s.OrganizationId,
		PlanId:              s.PlanId,
		ContactEmail:        s.ContactEmail,
		Status:              string(s.Status),
		IsCurrent:           s.IsCurrent,
		SubscribedAt:        s.SubscribedAt,
		TrialStartDate:      s.TrialStartDate,
		TrialEndDate:        s.TrialEndDate,
		CurrentPeriodEnd:    s.CurrentPeriodEnd,
		NextBillingDate:     s.NextBillingDate,
		AmountDue:           s.AmountDue,
		IsProrata:           s.IsProrata,
		ProrataDays:         s.ProrataDays,
		FreeMonthsRemaining: s.FreeMonthsRemaining,
		CancelledAt:         s.CancelledAt,
		CancellationReason:  s.CancellationReason,
	}
}
