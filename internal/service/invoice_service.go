// FILE: internal/service/invoice_service.go
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

	"github.com/google/uuid"
)

type IInvoiceService interface {
	GetInvoice(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
	ListForSubscription(ctx context.Context, subscriptionId uuid.UUID) ([]*dto.InvoiceResponse, error)
	ListByStatus(ctx context.Context, status string) ([]*dto.InvoiceResponse, error)

	// Generation runs inside the caller's unit of work so invoice,
	// counter and subscription rows commit together.
	IssueTrialInvoice(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription) (*entity.Invoice, error)
	IssueInitialInvoice(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription, plan *entity.Plan) (*entity.Invoice, *billing.ProrataResult, error)
	IssuePeriodicInvoice(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription, plan *entity.Plan, periodStart time.Time) (*entity.Invoice, bool, error)

	// MarkOverdue flips pending invoices past their due date to overdue.
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

type invoiceService struct {
	uowFactory unitofwork.RepositoryFactory
	clock      clock.Clock
	logger     logger.ILogger
}

func NewInvoiceService(uowFactory unitofwork.RepositoryFactory, clk clock.Clock, log logger.ILogger) IInvoiceService {
	return &invoiceService{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     log,
	}
}

func (s *invoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	invoice, err := uow.InvoiceRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, dto.NewNotFoundError("invoice", id)
	}
	return toInvoiceResponse(invoice), nil
}

func (s *invoiceService) ListForSubscription(ctx context.Context, subscriptionId uuid.UUID) ([]*dto.InvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	invoices, err := uow.InvoiceRepository().FindAll(ctx, specification.BySubscriptionID{SubscriptionID: subscriptionId})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(invoices), nil
}

func (s *invoiceService) ListByStatus(ctx context.Context, status string) ([]*dto.InvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	invoices, err := uow.InvoiceRepository().FindAll(ctx, specification.ByStatus{Status: status})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponses(invoices), nil
}

// IssueTrialInvoice records the free trial period as a zero-amount invoice
// so the subscription's invoice history has no gap.
func (s *invoiceService) IssueTrialInvoice(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription) (*entity.Invoice, error) {
	number, err := uow.InvoiceRepository().NextInvoiceNumber(ctx, sub.TrialStartDate.Year())
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	invoice := &entity.Invoice{
		Id:             uuid.New(),
		SubscriptionId: sub.Id,
		InvoiceNumber:  number,
		PeriodStart:    billing.TruncateToDay(sub.TrialStartDate),
		PeriodEnd:      billing.TruncateToDay(sub.TrialEndDate).AddDate(0, 0, -1),
		Amount:         0,
		DueDate:        billing.TruncateToDay(sub.TrialStartDate),
		Status:         entity.InvoiceStatusPaid,
		PaidAt:         &now,
	}

	if err := uow.InvoiceRepository().Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// IssueInitialInvoice charges the prorated remainder of the billing period
// that contains the trial end date. Free months granted to a first-time
// organization absorb the charge entirely.
func (s *invoiceService) IssueInitialInvoice(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription, plan *entity.Plan) (*entity.Invoice, *billing.ProrataResult, error) {
	prorata, err := billing.ComputeProrata(plan, sub.TrialEndDate)
	if err != nil {
		return nil, nil, err
	}

	amount := prorata.Amount
	if s.consumeFreeMonths(sub, plan.BillingCycle) {
		amount = 0
	}

	number, err := uow.InvoiceRepository().NextInvoiceNumber(ctx, prorata.PeriodStart.Year())
	if err != nil {
		return nil, nil, err
	}

	invoice := &entity.Invoice{
		Id:             uuid.New(),
		SubscriptionId: sub.Id,
		InvoiceNumber:  number,
		PeriodStart:    prorata.PeriodStart,
		PeriodEnd:      prorata.PeriodEnd,
		Amount:         amount,
		IsProrata:      prorata.IsProrata,
		DaysCalculated: prorata.DaysCalculated,
		DueDate:        prorata.PeriodStart,
		Status:         entity.InvoiceStatusPending,
	}
	settleZeroAmount(invoice, s.clock.Now())

	if err := uow.InvoiceRepository().Create(ctx, invoice); err != nil {
		return nil, nil, err
	}
	return invoice, prorata, nil
}

// IssuePeriodicInvoice creates the invoice for a full billing period.
// It is idempotent: the unique (subscription, period start) constraint
// turns a duplicate scheduler tick into a read of the existing invoice.
// The bool result reports whether a new invoice was created.
func (s *invoiceService) IssuePeriodicInvoice(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription, plan *entity.Plan, periodStart time.Time) (*entity.Invoice, bool, error) {
	day := billing.TruncateToDay(periodStart)

	existing, err := uow.InvoiceRepository().FindOne(ctx,
		specification.BySubscriptionID{SubscriptionID: sub.Id},
		specification.PeriodStartOn{Date: day},
	)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	periodEnd, days, err := billing.NextPeriod(plan.BillingCycle, day)
	if err != nil {
		return nil, false, err
	}

	amount := plan.Price
	if s.consumeFreeMonths(sub, plan.BillingCycle) {
		amount = 0
	}

	number, err := uow.InvoiceRepository().NextInvoiceNumber(ctx, day.Year())
	if err != nil {
		return nil, false, err
	}

	invoice := &entity.Invoice{
		Id:             uuid.New(),
		SubscriptionId: sub.Id,
		InvoiceNumber:  number,
		PeriodStart:    day,
		PeriodEnd:      periodEnd,
		Amount:         amount,
		DaysCalculated: days,
		DueDate:        day,
		Status:         entity.InvoiceStatusPending,
	}
	settleZeroAmount(invoice, s.clock.Now())

	if err := uow.InvoiceRepository().Create(ctx, invoice); err != nil {
		if dto.IsStateConflict(err) {
			// Lost the race against a concurrent tick; reread.
			existing, ferr := uow.InvoiceRepository().FindOne(ctx,
				specification.BySubscriptionID{SubscriptionID: sub.Id},
				specification.PeriodStartOn{Date: day},
			)
			if ferr != nil {
				return nil, false, ferr
			}
			if existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return invoice, true, nil
}

func (s *invoiceService) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	invoices, err := uow.InvoiceRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.InvoiceStatusPending)},
		specification.DueOnOrBefore{Date: billing.TruncateToDay(now).AddDate(0, 0, -1)},
	)
	if err != nil {
		_ = uow.Rollback()
		return 0, err
	}

	flipped := 0
	for _, invoice := range invoices {
		invoice.Status = entity.InvoiceStatusOverdue
		if err := uow.InvoiceRepository().Update(ctx, invoice); err != nil {
			_ = uow.Rollback()
			return 0, err
		}
		flipped++
	}

	if err := uow.Commit(); err != nil {
		return 0, err
	}
	if flipped > 0 {
		s.logger.Info("InvoiceService", "Marked invoices overdue", map[string]interface{}{"count": flipped})
	}
	return flipped, nil
}

// consumeFreeMonths burns one billing period's worth of free months when
// enough remain to cover the whole period. Partial coverage is not
// prorated; the remainder waits for a shorter cycle or expires unused.
func (s *invoiceService) consumeFreeMonths(sub *entity.Subscription, cycle entity.BillingCycle) bool {
	months := cycle.Months()
	if sub.FreeMonthsRemaining < months {
		return false
	}
	sub.FreeMonthsRemaining -= months
	return true
}

func settleZeroAmount(invoice *entity.Invoice, now time.Time) {
	if invoice.Amount == 0 {
		invoice.Status = entity.InvoiceStatusPaid
		invoice.PaidAt = &now
	}
}

func toInvoiceResponse(i *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		Id:              i.Id,
		SubscriptionId:  i.SubscriptionId,
		InvoiceNumber:   i.InvoiceNumber,
		PeriodStart:     i.PeriodStart,
		PeriodEnd:       i.PeriodEnd,
		Amount:          i.Amount,
		IsProrata:       i.IsProrata,
		DaysCalculated:  i.DaysCalculated,
		DueDate:         i.DueDate,
		Status:          string(i.Status),
		TotalPaid:       i.TotalPaid,
		RemainingAmount: i.RemainingAmount(),
		PaidAt:          i.PaidAt,
	}
}

func toInvoiceResponses(invoices []*entity.Invoice) []*dto.InvoiceResponse {
	result := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, i := range invoices {
		result = append(result, toInvoiceResponse(i))
	}
	return result
}
