// FILE: internal/service/revenue_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/repository/contract"
	"marketplace-billing-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSubscription(t *testing.T, fx *billingFixture, plan *entity.Plan, status entity.SubscriptionStatus, createdAt time.Time, cancelledAt *time.Time) *entity.Subscription {
	t.Helper()
	sub := &entity.Subscription{
		Id:             uuid.New(),
		OrganizationId: uuid.New(),
		PlanId:         plan.Id,
		Status:         status,
		IsCurrent:      status != entity.SubscriptionStatusCancelled,
		SubscribedAt:   createdAt,
		CreatedAt:      createdAt,
		CancelledAt:    cancelledAt,
	}
	ctx := context.Background()
	uow := fx.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.SubscriptionRepository().Create(ctx, sub))
	return sub
}

func seedValidatedClaim(t *testing.T, fx *billingFixture, amount int64, paymentDate time.Time) {
	t.Helper()
	ctx := context.Background()
	uow := fx.factory.NewUnitOfWork(ctx)
	now := paymentDate
	adminId := uuid.New()
	require.NoError(t, uow.PaymentClaimRepository().Create(ctx, &entity.PaymentClaim{
		Id:             uuid.New(),
		InvoiceId:      uuid.New(),
		SubmittedBy:    uuid.New(),
		Amount:         amount,
		Method:         entity.PaymentMethodCash,
		PaymentDate:    paymentDate,
		Status:         entity.ClaimStatusValidated,
		ValidatedBy:    &adminId,
		ValidationDate: &now,
	}))
}

func TestGetStats_ZeroDenominators(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

	stats, err := fx.revenue.GetStats(context.Background(), 2025)
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalRevenue)
	assert.Equal(t, int64(0), stats.MRR)
	assert.Equal(t, int64(0), stats.ARR)
	assert.Equal(t, int64(0), stats.ARPU)
	assert.Equal(t, 0.0, stats.ChurnRate)
	assert.Equal(t, 0.0, stats.ConversionRate)
	assert.Equal(t, 0, stats.ActiveSubscriptions)
}

func TestGetStats_AggregatesYear(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 100000, entity.BillingCycleAnnually, 0)

	created := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		seedSubscription(t, fx, plan, entity.SubscriptionStatusActive, created, nil)
	}
	cancelled := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	seedSubscription(t, fx, plan, entity.SubscriptionStatusCancelled, created, &cancelled)

	seedValidatedClaim(t, fx, 100000, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC))
	seedValidatedClaim(t, fx, 25000, time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC))
	// Outside the year, excluded.
	seedValidatedClaim(t, fx, 99999, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC))

	stats, err := fx.revenue.GetStats(context.Background(), 2025)
	require.NoError(t, err)

	assert.Equal(t, int64(125000), stats.TotalRevenue)
	// 100000/12 rounds to 8333 per active subscription.
	assert.Equal(t, int64(4*8333), stats.MRR)
	assert.Equal(t, int64(4*8333*12), stats.ARR)
	// Collected revenue spread over the four active subscriptions.
	assert.Equal(t, int64(125000/4), stats.ARPU)
	// One of five subscriptions churned this year.
	assert.InDelta(t, 20.0, stats.ChurnRate, 0.001)
	// Four of the five trials started this year converted.
	assert.InDelta(t, 80.0, stats.ConversionRate, 0.001)
	assert.Equal(t, 4, stats.ActiveSubscriptions)
}

func TestGetStats_MRRCountsActiveOnly(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)

	created := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	seedSubscription(t, fx, plan, entity.SubscriptionStatusActive, created, nil)
	seedSubscription(t, fx, plan, entity.SubscriptionStatusPendingPayment, created, nil)
	seedSubscription(t, fx, plan, entity.SubscriptionStatusSuspended, created, nil)

	stats, err := fx.revenue.GetStats(context.Background(), 2025)
	require.NoError(t, err)

	// Unpaid and suspended subscriptions carry no recurring revenue.
	assert.Equal(t, int64(10000), stats.MRR)
	assert.Equal(t, 1, stats.ActiveSubscriptions)
}

func TestGetStats_ConversionSkipsOpenTrials(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)

	// A trial that ended and converted.
	seedSubscription(t, fx, plan, entity.SubscriptionStatusActive,
		time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), nil)

	// A trial still running: its window closes after "now", so it must
	// not drag the rate down.
	ctx := context.Background()
	uow := fx.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.SubscriptionRepository().Create(ctx, &entity.Subscription{
		Id:             uuid.New(),
		OrganizationId: uuid.New(),
		PlanId:         plan.Id,
		Status:         entity.SubscriptionStatusTrial,
		IsCurrent:      true,
		TrialEndDate:   time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC),
		SubscribedAt:   time.Date(2025, time.May, 21, 0, 0, 0, 0, time.UTC),
		CreatedAt:      time.Date(2025, time.May, 21, 0, 0, 0, 0, time.UTC),
	}))

	stats, err := fx.revenue.GetStats(ctx, 2025)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, stats.ConversionRate, 0.001)
	assert.Equal(t, 1, stats.TrialSubscriptions)
}

type failingClaimRepository struct {
	contract.PaymentClaimRepository
}

func (failingClaimRepository) SumValidatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return 0, errors.New("store offline")
}

type failingUnitOfWork struct {
	unitofwork.UnitOfWork
}

func (u failingUnitOfWork) PaymentClaimRepository() contract.PaymentClaimRepository {
	return failingClaimRepository{u.UnitOfWork.PaymentClaimRepository()}
}

type failingFactory struct {
	unitofwork.RepositoryFactory
}

func (f failingFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return failingUnitOfWork{f.RepositoryFactory.NewUnitOfWork(ctx)}
}

// A broken store degrades reporting to zeroed figures instead of an error.
func TestReporting_DegradesOnStoreFailure(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	svc := NewRevenueService(failingFactory{fx.factory}, nil, fx.clk, nopLogger{})

	stats, err := svc.GetStats(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, stats.Year)
	assert.Equal(t, int64(0), stats.TotalRevenue)
	assert.Equal(t, int64(0), stats.MRR)
	assert.Equal(t, 0.0, stats.ChurnRate)

	entries, err := svc.GetMonthlyEvolution(context.Background(), 2025)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetMonthlyEvolution(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 100000, entity.BillingCycleAnnually, 0)

	seedSubscription(t, fx, plan, entity.SubscriptionStatusActive,
		time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC), nil)
	cancelled := time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)
	seedSubscription(t, fx, plan, entity.SubscriptionStatusCancelled,
		time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), &cancelled)

	seedValidatedClaim(t, fx, 100000, time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC))

	entries, err := fx.revenue.GetMonthlyEvolution(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, entries, 12)

	february := entries[1]
	assert.Equal(t, 2, february.Month)
	assert.Equal(t, 1, february.NewSubscriptions)
	assert.Equal(t, int64(100000), february.Revenue)
	assert.Equal(t, 2, february.ActiveAtEndOfMonth)

	april := entries[3]
	assert.Equal(t, 1, april.CancelledSubscriptions)
	assert.Equal(t, 1, april.ActiveAtEndOfMonth)

	december := entries[11]
	assert.Equal(t, int64(0), december.Revenue)
	assert.Equal(t, 1, december.ActiveAtEndOfMonth)
}
