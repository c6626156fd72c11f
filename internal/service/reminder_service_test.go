// FILE: internal/service/reminder_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"marketplace-billing-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendDueReminders_MatchesConfiguredOffsets(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	fx.subscribe(t, plan) // invoice due May 16

	// Five days out is not a monthly offset (7, 3, 1).
	sent, err := fx.reminders.SendDueReminders(context.Background(), time.Date(2025, time.May, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	sent, err = fx.reminders.SendDueReminders(context.Background(), time.Date(2025, time.May, 13, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestSendDueReminders_DedupsPerOffset(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	fx.subscribe(t, plan)

	at := time.Date(2025, time.May, 13, 0, 0, 0, 0, time.UTC)
	sent, err := fx.reminders.SendDueReminders(context.Background(), at)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	// A repeated scheduler tick on the same day sends nothing new.
	sent, err = fx.reminders.SendDueReminders(context.Background(), at)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	// The next configured offset fires independently.
	sent, err = fx.reminders.SendDueReminders(context.Background(), time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

// The dedup row carries the scheduler tick's time, not wall-clock time.
func TestSendDueReminders_StampsTickTime(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	sub := fx.subscribe(t, plan)

	at := time.Date(2025, time.May, 13, 0, 0, 0, 0, time.UTC)
	sent, err := fx.reminders.SendDueReminders(context.Background(), at)
	require.NoError(t, err)
	require.Equal(t, 1, sent)

	ctx := context.Background()
	invoice := fx.pendingInvoice(t, sub.Id)
	reminders, err := fx.factory.NewUnitOfWork(ctx).ReminderRepository().FindAllForInvoice(ctx, invoice.Id)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.True(t, reminders[0].SentAt.Equal(at))
}

func TestSendDueReminders_SkipsPastDueAndSettled(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	paid := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 1)
	fx.subscribe(t, paid) // free month settles the invoice immediately

	unpaid := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	fx.subscribe(t, unpaid)

	// Past the due date nothing is sent, even though offsets would match
	// a negative distance.
	sent, err := fx.reminders.SendDueReminders(context.Background(), time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}
