// FILE: internal/service/invoice_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"marketplace-billing-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuePeriodicInvoice_Idempotent(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	res := fx.subscribe(t, plan)
	sub := fx.subscription(t, res.Id)

	ctx := context.Background()
	uow := fx.factory.NewUnitOfWork(ctx)
	periodStart := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)

	first, created, err := fx.invoices.IssuePeriodicInvoice(ctx, uow, sub, plan, periodStart)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(10000), first.Amount)
	assert.Equal(t, time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC), first.PeriodEnd)
	assert.Equal(t, periodStart, first.DueDate)

	second, created, err := fx.invoices.IssuePeriodicInvoice(ctx, uow, sub, plan, periodStart)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.Id, second.Id)
}

func TestIssuePeriodicInvoice_FreeMonthsProduceSettledInvoice(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	res := fx.subscribe(t, plan)
	sub := fx.subscription(t, res.Id)
	sub.FreeMonthsRemaining = 2

	ctx := context.Background()
	uow := fx.factory.NewUnitOfWork(ctx)
	invoice, created, err := fx.invoices.IssuePeriodicInvoice(ctx, uow, sub, plan,
		time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, int64(0), invoice.Amount)
	assert.Equal(t, entity.InvoiceStatusPaid, invoice.Status)
	assert.NotNil(t, invoice.PaidAt)
	assert.Equal(t, 1, sub.FreeMonthsRemaining)
}

func TestIssuePeriodicInvoice_PartialFreeMonthsNotConsumed(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 60000, entity.BillingCycleSemesterly, 0)
	res := fx.subscribe(t, plan)
	sub := fx.subscription(t, res.Id)

	// Two free months cannot cover a six-month period; they wait.
	sub.FreeMonthsRemaining = 2

	ctx := context.Background()
	uow := fx.factory.NewUnitOfWork(ctx)
	invoice, _, err := fx.invoices.IssuePeriodicInvoice(ctx, uow, sub, plan,
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, int64(60000), invoice.Amount)
	assert.Equal(t, 2, sub.FreeMonthsRemaining)
}

func TestMarkOverdue_FlipsOnlyPastDue(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	res := fx.subscribe(t, plan)
	invoice := fx.pendingInvoice(t, res.Id) // due May 16

	// On the due date itself the invoice is not yet overdue.
	flipped, err := fx.invoices.MarkOverdue(context.Background(), time.Date(2025, time.May, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, flipped)

	flipped, err = fx.invoices.MarkOverdue(context.Background(), time.Date(2025, time.May, 17, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, flipped)

	stored, err := fx.invoices.GetInvoice(context.Background(), invoice.Id)
	require.NoError(t, err)
	assert.Equal(t, "overdue", stored.Status)

	// Idempotent: already-overdue invoices are not counted again.
	flipped, err = fx.invoices.MarkOverdue(context.Background(), time.Date(2025, time.May, 18, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, flipped)
}

func TestInvoiceNumbers_SequentialPerYear(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)

	first := fx.subscribe(t, plan)
	second := fx.subscribe(t, plan)

	var numbers []string
	for _, invoice := range append(fx.invoicesFor(t, first.Id), fx.invoicesFor(t, second.Id)...) {
		numbers = append(numbers, invoice.InvoiceNumber)
	}

	seen := make(map[string]bool)
	for _, number := range numbers {
		assert.Regexp(t, `^INV-2025-\d{6}$`, number)
		assert.False(t, seen[number], "duplicate invoice number %s", number)
		seen[number] = true
	}
	assert.Len(t, seen, 4)
}
