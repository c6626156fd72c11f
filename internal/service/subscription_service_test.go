// FILE: internal/service/subscription_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_BooksTrialAndProratedInvoice(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 9, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)

	res := fx.subscribe(t, plan)

	assert.Equal(t, "trial", res.Status)
	assert.True(t, res.IsCurrent)
	assert.Equal(t, time.Date(2025, time.May, 16, 0, 0, 0, 0, time.UTC), res.TrialEndDate)
	// Trial ends mid-May: 16 remaining days of a 31-day month.
	assert.True(t, res.IsProrata)
	assert.Equal(t, 16, res.ProrataDays)
	assert.Equal(t, int64(5161), res.AmountDue)
	assert.Equal(t, time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC), res.CurrentPeriodEnd)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), res.NextBillingDate)

	invoices := fx.invoicesFor(t, res.Id)
	require.Len(t, invoices, 2)

	var trial, initial *entity.Invoice
	for _, invoice := range invoices {
		if invoice.Amount == 0 {
			trial = invoice
		} else {
			initial = invoice
		}
	}
	require.NotNil(t, trial)
	require.NotNil(t, initial)

	assert.Equal(t, entity.InvoiceStatusPaid, trial.Status)
	assert.NotNil(t, trial.PaidAt)
	assert.Regexp(t, `^INV-2025-\d{6}$`, trial.InvoiceNumber)

	assert.Equal(t, entity.InvoiceStatusPending, initial.Status)
	assert.Equal(t, int64(5161), initial.Amount)
	assert.Equal(t, time.Date(2025, time.May, 16, 0, 0, 0, 0, time.UTC), initial.DueDate)
	assert.NotEqual(t, trial.InvoiceNumber, initial.InvoiceNumber)
}

func TestSubscribe_RejectsSecondCurrentSubscription(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)

	orgId := uuid.New()
	_, err := fx.subscriptions.Subscribe(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationId: orgId,
		PlanId:         plan.Id,
	})
	require.NoError(t, err)

	_, err = fx.subscriptions.Subscribe(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationId: orgId,
		PlanId:         plan.Id,
	})
	assert.True(t, dto.IsStateConflict(err))
}

func TestSubscribe_InactivePlan(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	plan.IsActive = false
	uow := fx.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.PlanRepository().Update(context.Background(), plan))

	_, err := fx.subscriptions.Subscribe(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationId: uuid.New(),
		PlanId:         plan.Id,
	})
	assert.True(t, dto.IsStateConflict(err))
}

func TestSubscribe_FreeMonthsAbsorbFirstInvoice(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 1)

	res := fx.subscribe(t, plan)

	assert.Equal(t, int64(0), res.AmountDue)
	assert.Equal(t, 0, res.FreeMonthsRemaining)

	for _, invoice := range fx.invoicesFor(t, res.Id) {
		assert.Equal(t, entity.InvoiceStatusPaid, invoice.Status)
		assert.Equal(t, int64(0), invoice.Amount)
	}
}

func TestSubscribe_NoFreeMonthsOnResubscribe(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 1)

	orgId := uuid.New()
	first, err := fx.subscriptions.Subscribe(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationId: orgId,
		PlanId:         plan.Id,
	})
	require.NoError(t, err)

	_, err = fx.subscriptions.Cancel(context.Background(), first.Id, &dto.CancelSubscriptionRequest{Reason: "switching"})
	require.NoError(t, err)

	second, err := fx.subscriptions.Subscribe(context.Background(), &dto.CreateSubscriptionRequest{
		OrganizationId: orgId,
		PlanId:         plan.Id,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, second.FreeMonthsRemaining)
	assert.Equal(t, int64(5161), second.AmountDue)
}

func TestCancel_FreesCurrentSlotAndKeepsHistory(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)

	res := fx.subscribe(t, plan)
	cancelled, err := fx.subscriptions.Cancel(context.Background(), res.Id, &dto.CancelSubscriptionRequest{Reason: "closing shop"})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", cancelled.Status)
	assert.False(t, cancelled.IsCurrent)
	require.NotNil(t, cancelled.CancelledAt)

	// Terminal: no further transitions.
	_, err = fx.subscriptions.Reactivate(context.Background(), res.Id)
	assert.True(t, dto.IsStateConflict(err))

	// History row survives.
	stored := fx.subscription(t, res.Id)
	assert.Equal(t, entity.SubscriptionStatusCancelled, stored.Status)
}

func TestExpireTrials_SplitsOnOutstandingBalance(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	paidPlan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	freePlan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 1)

	owing := fx.subscribe(t, paidPlan)
	settled := fx.subscribe(t, freePlan)

	// Before the trial end date nothing moves.
	touched, err := fx.subscriptions.ExpireTrials(context.Background(), time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, touched)

	touched, err = fx.subscriptions.ExpireTrials(context.Background(), time.Date(2025, time.May, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, touched)

	assert.Equal(t, entity.SubscriptionStatusPendingPayment, fx.subscription(t, owing.Id).Status)
	assert.Equal(t, entity.SubscriptionStatusActive, fx.subscription(t, settled.Id).Status)
}

func TestRolloverDueSubscriptions_IssuesNextPeriodOnce(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	res := fx.subscribe(t, plan)

	_, err := fx.subscriptions.ExpireTrials(context.Background(), time.Date(2025, time.May, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	rolloverDay := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	touched, err := fx.subscriptions.RolloverDueSubscriptions(context.Background(), rolloverDay)
	require.NoError(t, err)
	assert.Equal(t, 1, touched)

	sub := fx.subscription(t, res.Id)
	assert.Equal(t, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), sub.CurrentPeriodEnd)
	assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), sub.NextBillingDate)
	assert.Equal(t, int64(5161+10000), sub.AmountDue)
	assert.Len(t, fx.invoicesFor(t, res.Id), 3)

	// Second run on the same day finds nothing due.
	touched, err = fx.subscriptions.RolloverDueSubscriptions(context.Background(), rolloverDay)
	require.NoError(t, err)
	assert.Equal(t, 0, touched)
	assert.Len(t, fx.invoicesFor(t, res.Id), 3)
}

func TestSuspendDelinquent_HonorsGracePeriod(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	res := fx.subscribe(t, plan)

	_, err := fx.subscriptions.ExpireTrials(context.Background(), time.Date(2025, time.May, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Invoice due May 16, grace 7 days: May 20 is still inside grace.
	touched, err := fx.subscriptions.SuspendDelinquent(context.Background(), time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, touched)
	assert.Equal(t, entity.SubscriptionStatusPendingPayment, fx.subscription(t, res.Id).Status)

	touched, err = fx.subscriptions.SuspendDelinquent(context.Background(), time.Date(2025, time.May, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, touched)

	sub := fx.subscription(t, res.Id)
	assert.Equal(t, entity.SubscriptionStatusSuspended, sub.Status)
	assert.NotEmpty(t, sub.SuspensionReason)
}

func TestSuspendDelinquent_DisabledBySettings(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	res := fx.subscribe(t, plan)

	_, err := fx.subscriptions.ExpireTrials(context.Background(), time.Date(2025, time.May, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	fx.saveSettings(t, func(s *entity.Settings) { s.AutoSuspendAfterTrial = false })

	touched, err := fx.subscriptions.SuspendDelinquent(context.Background(), time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, touched)
	assert.Equal(t, entity.SubscriptionStatusPendingPayment, fx.subscription(t, res.Id).Status)
}

func TestReactivate_SettlementGate(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	res := fx.subscribe(t, plan)

	_, err := fx.subscriptions.ExpireTrials(context.Background(), time.Date(2025, time.May, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = fx.subscriptions.Suspend(context.Background(), res.Id, &dto.SuspendSubscriptionRequest{Reason: "manual"})
	require.NoError(t, err)

	fx.saveSettings(t, func(s *entity.Settings) { s.RequireSettledOnReactivate = true })

	_, err = fx.subscriptions.Reactivate(context.Background(), res.Id)
	assert.True(t, dto.IsStateConflict(err))

	fx.saveSettings(t, func(s *entity.Settings) { s.RequireSettledOnReactivate = false })

	reactivated, err := fx.subscriptions.Reactivate(context.Background(), res.Id)
	require.NoError(t, err)
	assert.Equal(t, "active", reactivated.Status)
}
