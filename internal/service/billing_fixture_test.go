// FILE: internal/service/billing_fixture_test.go
package service

import (
	"context"
	"testing"
	"time"

	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/pkg/clock"
	"marketplace-billing-be/internal/repository/memory"
	"marketplace-billing-be/internal/repository/specification"
	"marketplace-billing-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// billingFixture wires the service layer against the in-memory store so
// full flows (subscribe, expire, claim, validate) run without a database.
type billingFixture struct {
	store   *memory.Store
	factory unitofwork.RepositoryFactory
	clk     *clock.Fixed

	invoices      IInvoiceService
	subscriptions ISubscriptionService
	payments      IPaymentService
	reminders     IReminderService
	revenue       IRevenueService
}

func newBillingFixture(t *testing.T, now time.Time) *billingFixture {
	t.Helper()

	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	clk := clock.NewFixed(now)
	log := nopLogger{}
	notifier := NewNotificationService(nil, nil, "billing.notifications.test", log)

	invoices := NewInvoiceService(factory, clk, log)
	return &billingFixture{
		store:         store,
		factory:       factory,
		clk:           clk,
		invoices:      invoices,
		subscriptions: NewSubscriptionService(factory, invoices, notifier, clk, log),
		payments:      NewPaymentService(factory, notifier, nil, clk, log),
		reminders:     NewReminderService(factory, notifier, log),
		revenue:       NewRevenueService(factory, nil, clk, log),
	}
}

func (f *billingFixture) seedPlan(t *testing.T, price int64, cycle entity.BillingCycle, freeMonths int) *entity.Plan {
	t.Helper()
	plan := &entity.Plan{
		Id:           uuid.New(),
		Name:         "Test Plan",
		Slug:         "test-" + uuid.New().String()[:8],
		Price:        price,
		BillingCycle: cycle,
		FreeMonths:   freeMonths,
		IsActive:     true,
	}
	uow := f.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.PlanRepository().Create(context.Background(), plan))
	return plan
}

func (f *billingFixture) saveSettings(t *testing.T, mutate func(*entity.Settings)) {
	t.Helper()
	ctx := context.Background()
	uow := f.factory.NewUnitOfWork(ctx)
	settings, err := uow.SettingsRepository().Get(ctx)
	require.NoError(t, err)
	mutate(settings)
	require.NoError(t, uow.SettingsRepository().Save(ctx, settings))
}

func (f *billingFixture) subscription(t *testing.T, id uuid.UUID) *entity.Subscription {
	t.Helper()
	ctx := context.Background()
	uow := f.factory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id})
	require.NoError(t, err)
	require.NotNil(t, sub)
	return sub
}

func (f *billingFixture) invoicesFor(t *testing.T, subscriptionId uuid.UUID) []*entity.Invoice {
	t.Helper()
	ctx := context.Background()
	uow := f.factory.NewUnitOfWork(ctx)
	invoices, err := uow.InvoiceRepository().FindAll(ctx,
		specification.BySubscriptionID{SubscriptionID: subscriptionId})
	require.NoError(t, err)
	return invoices
}

// pendingInvoice returns the single open invoice of a subscription.
func (f *billingFixture) pendingInvoice(t *testing.T, subscriptionId uuid.UUID) *entity.Invoice {
	t.Helper()
	for _, invoice := range f.invoicesFor(t, subscriptionId) {
		if invoice.Status == entity.InvoiceStatusPending || invoice.Status == entity.InvoiceStatusOverdue {
			return invoice
		}
	}
	t.Fatalf("no open invoice for subscription %s", subscriptionId)
	return nil
}

// subscribe opens a trial subscription for a fresh organization.
func (f *billingFixture) subscribe(t *testing.T, plan *entity.Plan) *dto.SubscriptionResponse {
	t.Helper()
	res, err := f.subscriptions.Subscribe(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationId: uuid.New(),
		PlanId:         plan.Id,
		ContactEmail:   "billing@example.test",
	})
	require.NoError(t, err)
	return res
}
