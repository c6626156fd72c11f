// FILE: internal/service/payment_service_test.go
package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openClaim drives a subscription out of trial and submits a pending claim
// against its prorated invoice.
func openClaim(t *testing.T, fx *billingFixture, amount int64) (*dto.SubscriptionResponse, *entity.Invoice, *dto.ClaimResponse) {
	t.Helper()
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	sub := fx.subscribe(t, plan)

	_, err := fx.subscriptions.ExpireTrials(context.Background(), sub.TrialEndDate)
	require.NoError(t, err)

	invoice := fx.pendingInvoice(t, sub.Id)
	claim, err := fx.payments.SubmitClaim(context.Background(), uuid.New(), &dto.SubmitClaimRequest{
		InvoiceId:            invoice.Id,
		Amount:               amount,
		Method:               "wave",
		TransactionReference: "WV-12345",
		PaymentDate:          fx.clk.Now(),
	})
	require.NoError(t, err)
	return sub, invoice, claim
}

func TestSubmitClaim_RequiresReferenceForMobileMoney(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	sub := fx.subscribe(t, plan)
	invoice := fx.pendingInvoice(t, sub.Id)

	_, err := fx.payments.SubmitClaim(context.Background(), uuid.New(), &dto.SubmitClaimRequest{
		InvoiceId:   invoice.Id,
		Amount:      5161,
		Method:      "orange_money",
		PaymentDate: fx.clk.Now(),
	})
	assert.True(t, dto.IsValidation(err))

	// Cash needs no reference.
	_, err = fx.payments.SubmitClaim(context.Background(), uuid.New(), &dto.SubmitClaimRequest{
		InvoiceId:   invoice.Id,
		Amount:      5161,
		Method:      "cash",
		PaymentDate: fx.clk.Now(),
	})
	assert.NoError(t, err)
}

func TestSubmitClaim_RejectsSettledInvoice(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	_, invoice, claim := openClaim(t, fx, 5161)

	_, err := fx.payments.ValidateClaim(context.Background(), claim.Id, uuid.New())
	require.NoError(t, err)

	_, err = fx.payments.SubmitClaim(context.Background(), uuid.New(), &dto.SubmitClaimRequest{
		InvoiceId:   invoice.Id,
		Amount:      100,
		Method:      "cash",
		PaymentDate: fx.clk.Now(),
	})
	assert.True(t, dto.IsStateConflict(err))
}

func TestValidateClaim_SettlesInvoiceAndActivates(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	sub, invoice, claim := openClaim(t, fx, 5161)

	adminId := uuid.New()
	validated, err := fx.payments.ValidateClaim(context.Background(), claim.Id, adminId)
	require.NoError(t, err)

	assert.Equal(t, "validated", validated.Status)
	assert.Regexp(t, `^RCT-[0-9A-F]{8}$`, validated.ReceiptNumber)
	require.NotNil(t, validated.ValidatedBy)
	assert.Equal(t, adminId, *validated.ValidatedBy)

	paid, err := fx.invoices.GetInvoice(context.Background(), invoice.Id)
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	assert.Equal(t, int64(5161), paid.TotalPaid)
	assert.Equal(t, int64(0), paid.RemainingAmount)
	assert.NotNil(t, paid.PaidAt)

	stored := fx.subscription(t, sub.Id)
	assert.Equal(t, entity.SubscriptionStatusActive, stored.Status)
	assert.Equal(t, int64(0), stored.AmountDue)
}

func TestValidateClaim_PartialPaymentKeepsInvoiceOpen(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	sub, invoice, claim := openClaim(t, fx, 2000)

	_, err := fx.payments.ValidateClaim(context.Background(), claim.Id, uuid.New())
	require.NoError(t, err)

	open, err := fx.invoices.GetInvoice(context.Background(), invoice.Id)
	require.NoError(t, err)
	assert.Equal(t, "pending", open.Status)
	assert.Equal(t, int64(2000), open.TotalPaid)
	assert.Equal(t, int64(3161), open.RemainingAmount)

	stored := fx.subscription(t, sub.Id)
	assert.Equal(t, entity.SubscriptionStatusPendingPayment, stored.Status)
	assert.Equal(t, int64(3161), stored.AmountDue)
}

func TestValidateClaim_ExactlyOnceUnderConcurrency(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	_, invoice, claim := openClaim(t, fx, 5161)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.payments.ValidateClaim(context.Background(), claim.Id, uuid.New())
		}(i)
	}
	wg.Wait()

	var successes, alreadyProcessed int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case dto.IsAlreadyProcessed(err):
			alreadyProcessed++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, racers-1, alreadyProcessed)

	// The invoice was credited exactly once.
	paid, err := fx.invoices.GetInvoice(context.Background(), invoice.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(5161), paid.TotalPaid)
}

// A validated payment that settles the invoice cures a suspension without
// a separate admin reactivation.
func TestValidateClaim_ReactivatesSuspendedSubscription(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	sub, _, claim := openClaim(t, fx, 5161)

	_, err := fx.subscriptions.Suspend(context.Background(), sub.Id, &dto.SuspendSubscriptionRequest{
		Reason: "payment overdue",
	})
	require.NoError(t, err)

	_, err = fx.payments.ValidateClaim(context.Background(), claim.Id, uuid.New())
	require.NoError(t, err)

	updated := fx.subscription(t, sub.Id)
	assert.Equal(t, entity.SubscriptionStatusActive, updated.Status)
	assert.Empty(t, updated.SuspensionReason)

	invoice := fx.invoicesFor(t, sub.Id)
	for _, inv := range invoice {
		assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	}
}

func TestRejectClaim_RequiresReason(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	_, _, claim := openClaim(t, fx, 5161)

	_, err := fx.payments.RejectClaim(context.Background(), claim.Id, uuid.New(), &dto.RejectClaimRequest{Reason: "   "})
	assert.True(t, dto.IsValidation(err))

	// The claim is still open for a proper rejection.
	_, err = fx.payments.RejectClaim(context.Background(), claim.Id, uuid.New(), &dto.RejectClaimRequest{Reason: "reference introuvable"})
	require.NoError(t, err)
}

func TestRejectClaim_LeavesLedgerUntouched(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	sub, invoice, claim := openClaim(t, fx, 5161)

	rejected, err := fx.payments.RejectClaim(context.Background(), claim.Id, uuid.New(), &dto.RejectClaimRequest{
		Reason: "reference not found in bank statement",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	assert.Equal(t, "reference not found in bank statement", rejected.RejectionReason)

	open, err := fx.invoices.GetInvoice(context.Background(), invoice.Id)
	require.NoError(t, err)
	assert.Equal(t, "pending", open.Status)
	assert.Equal(t, int64(0), open.TotalPaid)
	assert.Equal(t, entity.SubscriptionStatusPendingPayment, fx.subscription(t, sub.Id).Status)

	// A rejected claim is terminal for both operations.
	_, err = fx.payments.ValidateClaim(context.Background(), claim.Id, uuid.New())
	assert.True(t, dto.IsAlreadyProcessed(err))
	_, err = fx.payments.RejectClaim(context.Background(), claim.Id, uuid.New(), &dto.RejectClaimRequest{Reason: "again"})
	assert.True(t, dto.IsAlreadyProcessed(err))
}

func TestRecordDirectPayment_CreatesValidatedClaim(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	plan := fx.seedPlan(t, 10000, entity.BillingCycleMonthly, 0)
	sub := fx.subscribe(t, plan)
	invoice := fx.pendingInvoice(t, sub.Id)

	adminId := uuid.New()
	claim, err := fx.payments.RecordDirectPayment(context.Background(), adminId, &dto.DirectPaymentRequest{
		InvoiceId:     invoice.Id,
		Amount:        5161,
		Method:        "cash",
		PaymentDate:   fx.clk.Now(),
		ReceiptNumber: "RCT-COUNTER1",
	})
	require.NoError(t, err)

	assert.Equal(t, "validated", claim.Status)
	assert.Equal(t, "RCT-COUNTER1", claim.ReceiptNumber)
	assert.Equal(t, adminId, claim.SubmittedBy)

	paid, err := fx.invoices.GetInvoice(context.Background(), invoice.Id)
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
}

func TestReceiptForInvoice(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	notifier := NewNotificationService(nil, nil, "billing.notifications.test", nopLogger{})
	payments := NewPaymentService(fx.factory, notifier, NewReceiptService(t.TempDir()), fx.clk, nopLogger{})

	_, invoice, claim := openClaim(t, fx, 5161)

	// No validated claim yet.
	_, err := payments.ReceiptForInvoice(context.Background(), invoice.Id)
	assert.True(t, dto.IsStateConflict(err))

	validated, err := payments.ValidateClaim(context.Background(), claim.Id, uuid.New())
	require.NoError(t, err)

	path, err := payments.ReceiptForInvoice(context.Background(), invoice.Id)
	require.NoError(t, err)
	assert.Contains(t, path, validated.ReceiptNumber)
}

func TestListPendingClaims(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC))
	_, _, claim := openClaim(t, fx, 5161)

	pending, err := fx.payments.ListPendingClaims(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, claim.Id, pending[0].Id)

	_, err = fx.payments.ValidateClaim(context.Background(), claim.Id, uuid.New())
	require.NoError(t, err)

	pending, err = fx.payments.ListPendingClaims(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}
