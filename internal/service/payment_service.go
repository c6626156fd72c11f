// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/pkg/clock"
	"marketplace-billing-be/internal/pkg/logger"
	"marketplace-billing-be/internal/repository/specification"
	"marketplace-billing-be/internal/repository/unitofwork"
	"marketplace-billing-be/pkg/events"

	"github.com/google/uuid"
)

type IPaymentService interface {
	SubmitClaim(ctx context.Context, submittedBy uuid.UUID, req *dto.SubmitClaimRequest) (*dto.ClaimResponse, error)
	ValidateClaim(ctx context.Context, claimId, adminId uuid.UUID) (*dto.ClaimResponse, error)
	RejectClaim(ctx context.Context, claimId, adminId uuid.UUID, req *dto.RejectClaimRequest) (*dto.ClaimResponse, error)
	RecordDirectPayment(ctx context.Context, adminId uuid.UUID, req *dto.DirectPaymentRequest) (*dto.ClaimResponse, error)

	GetClaim(ctx context.Context, id uuid.UUID) (*dto.ClaimResponse, error)
	ListClaimsForInvoice(ctx context.Context, invoiceId uuid.UUID) ([]*dto.ClaimResponse, error)
	ListPendingClaims(ctx context.Context) ([]*dto.ClaimResponse, error)
	ReceiptForInvoice(ctx context.Context, invoiceId uuid.UUID) (string, error)
}

type paymentService struct {
	uowFactory unitofwork.RepositoryFactory
	notifier   *NotificationService
	receipts   IReceiptService
	clock      clock.Clock
	logger     logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	notifier *NotificationService,
	receipts IReceiptService,
	clk clock.Clock,
	log logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory: uowFactory,
		notifier:   notifier,
		receipts:   receipts,
		clock:      clk,
		logger:     log,
	}
}

// SubmitClaim registers a client's assertion that an out-of-band payment
// was made. The claim has no financial effect until an admin validates it.
func (s *paymentService) SubmitClaim(ctx context.Context, submittedBy uuid.UUID, req *dto.SubmitClaimRequest) (*dto.ClaimResponse, error) {
	method := entity.PaymentMethod(req.Method)
	if !method.Valid() {
		return nil, dto.NewValidationError("method", "unknown payment method")
	}
	if method.RequiresReference() && strings.TrimSpace(req.TransactionReference) == "" {
		return nil, dto.NewValidationError("transaction_reference", "reference is required for "+req.Method)
	}
	if req.Amount <= 0 {
		return nil, dto.NewValidationError("amount", "amount must be positive")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	invoice, err := uow.InvoiceRepository().FindOne(ctx, specification.ByID{ID: req.InvoiceId})
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, dto.NewNotFoundError("invoice", req.InvoiceId)
	}
	if invoice.Status == entity.InvoiceStatusCancelled {
		return nil, dto.NewStateConflictError("invoice %s is cancelled", invoice.InvoiceNumber)
	}
	if invoice.IsSettled() {
		return nil, dto.NewStateConflictError("invoice %s is already settled", invoice.InvoiceNumber)
	}

	claim := &entity.PaymentClaim{
		Id:                   uuid.New(),
		InvoiceId:            invoice.Id,
		SubmittedBy:          submittedBy,
		Amount:               req.Amount,
		Method:               method,
		TransactionReference: req.TransactionReference,
		PaymentDate:          req.PaymentDate,
		Notes:                req.Notes,
		Status:               entity.ClaimStatusPendingValidation,
	}
	if err := uow.PaymentClaimRepository().Create(ctx, claim); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, events.TypePaymentClaimSubmitted, map[string]interface{}{
		"claim_id":       claim.Id.String(),
		"invoice_number": invoice.InvoiceNumber,
		"amount":         claim.Amount,
		"method":         string(claim.Method),
	}, nil)
	return toClaimResponse(claim), nil
}

// ValidateClaim is the money-moving half of reconciliation. Claim, invoice
// and subscription are locked and updated in one transaction, so a claim
// credits its invoice exactly once no matter how many admins click at the
// same moment; the loser of the race gets AlreadyProcessedError.
func (s *paymentService) ValidateClaim(ctx context.Context, claimId, adminId uuid.UUID) (*dto.ClaimResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	claim, invoice, sub, err := s.validateTx(ctx, uow, claimId, adminId)
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("PaymentService", "Claim validated", map[string]interface{}{
		"claim_id":       claim.Id.String(),
		"invoice_number": invoice.InvoiceNumber,
		"receipt_number": claim.ReceiptNumber,
		"amount":         claim.Amount,
		"validated_by":   adminId.String(),
	})

	s.afterValidation(ctx, claim, invoice, sub)
	return toClaimResponse(claim), nil
}

func (s *paymentService) validateTx(ctx context.Context, uow unitofwork.UnitOfWork, claimId, adminId uuid.UUID) (*entity.PaymentClaim, *entity.Invoice, *entity.Subscription, error) {
	claim, err := uow.PaymentClaimRepository().FindOne(ctx, specification.ByID{ID: claimId}, specification.ForUpdate{})
	if err != nil {
		return nil, nil, nil, err
	}
	if claim == nil {
		return nil, nil, nil, dto.NewNotFoundError("payment claim", claimId)
	}
	if claim.IsTerminal() {
		return nil, nil, nil, &dto.AlreadyProcessedError{ClaimId: claim.Id, Status: string(claim.Status)}
	}

	now := s.clock.Now()
	claim.Status = entity.ClaimStatusValidated
	claim.ValidatedBy = &adminId
	claim.ValidationDate = &now
	claim.ReceiptNumber = newReceiptNumber()
	if err := uow.PaymentClaimRepository().Update(ctx, claim); err != nil {
		return nil, nil, nil, err
	}

	invoice, sub, err := s.creditInvoice(ctx, uow, claim)
	if err != nil {
		return nil, nil, nil, err
	}
	return claim, invoice, sub, nil
}

// creditInvoice applies a validated claim to its invoice and propagates
// settlement to the subscription.
func (s *paymentService) creditInvoice(ctx context.Context, uow unitofwork.UnitOfWork, claim *entity.PaymentClaim) (*entity.Invoice, *entity.Subscription, error) {
	invoice, err := uow.InvoiceRepository().FindOne(ctx, specification.ByID{ID: claim.InvoiceId}, specification.ForUpdate{})
	if err != nil {
		return nil, nil, err
	}
	if invoice == nil {
		return nil, nil, dto.NewNotFoundError("invoice", claim.InvoiceId)
	}

	now := s.clock.Now()
	invoice.TotalPaid += claim.Amount
	if invoice.IsSettled() && invoice.Status != entity.InvoiceStatusPaid {
		invoice.Status = entity.InvoiceStatusPaid
		invoice.PaidAt = &now
	}
	if err := uow.InvoiceRepository().Update(ctx, invoice); err != nil {
		return nil, nil, err
	}

	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: invoice.SubscriptionId}, specification.ForUpdate{})
	if err != nil {
		return nil, nil, err
	}
	if sub == nil {
		return invoice, nil, nil
	}

	sub.AmountDue -= claim.Amount
	if sub.AmountDue < 0 {
		sub.AmountDue = 0
	}
	// A settled invoice reactivates the subscription from any state a
	// validated payment can cure, suspended included.
	if invoice.IsSettled() {
		switch sub.Status {
		case entity.SubscriptionStatusTrial,
			entity.SubscriptionStatusPendingPayment,
			entity.SubscriptionStatusSuspended:
			if sub.CanTransitionTo(entity.SubscriptionStatusActive) {
				sub.Status = entity.SubscriptionStatusActive
				sub.SuspensionReason = ""
			}
		}
	}
	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		return nil, nil, err
	}
	return invoice, sub, nil
}

// afterValidation fires the post-commit notifications. Receipt rendering is
// deliberately absent here: receipts are produced on download, never inside
// the billing control flow.
func (s *paymentService) afterValidation(ctx context.Context, claim *entity.PaymentClaim, invoice *entity.Invoice, sub *entity.Subscription) {
	email := ""
	if sub != nil {
		email = sub.ContactEmail
	}
	s.notifier.Dispatch(ctx, events.TypePaymentValidated, map[string]interface{}{
		"claim_id":       claim.Id.String(),
		"invoice_number": invoice.InvoiceNumber,
		"receipt_number": claim.ReceiptNumber,
		"amount":         claim.Amount,
	}, &dto.NotificationMessage{
		Email:         email,
		InvoiceNumber: invoice.InvoiceNumber,
		ReceiptNumber: claim.ReceiptNumber,
		Amount:        claim.Amount,
	})
}

// RejectClaim closes a claim without touching the invoice ledger.
func (s *paymentService) RejectClaim(ctx context.Context, claimId, adminId uuid.UUID, req *dto.RejectClaimRequest) (*dto.ClaimResponse, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, dto.NewValidationError("reason", "rejection reason is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	claim, err := uow.PaymentClaimRepository().FindOne(ctx, specification.ByID{ID: claimId}, specification.ForUpdate{})
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if claim == nil {
		_ = uow.Rollback()
		return nil, dto.NewNotFoundError("payment claim", claimId)
	}
	if claim.IsTerminal() {
		_ = uow.Rollback()
		return nil, &dto.AlreadyProcessedError{ClaimId: claim.Id, Status: string(claim.Status)}
	}

	now := s.clock.Now()
	claim.Status = entity.ClaimStatusRejected
	claim.ValidatedBy = &adminId
	claim.ValidationDate = &now
	claim.RejectionReason = req.Reason
	if err := uow.PaymentClaimRepository().Update(ctx, claim); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(ctx, events.TypePaymentRejected, map[string]interface{}{
		"claim_id": claim.Id.String(),
		"reason":   req.Reason,
	}, nil)
	return toClaimResponse(claim), nil
}

// RecordDirectPayment lets an admin book a payment received without a
// prior client claim (cash at the counter). It creates the claim already
// validated and credits the invoice in the same transaction.
func (s *paymentService) RecordDirectPayment(ctx context.Context, adminId uuid.UUID, req *dto.DirectPaymentRequest) (*dto.ClaimResponse, error) {
	method := entity.PaymentMethod(req.Method)
	if !method.Valid() {
		return nil, dto.NewValidationError("method", "unknown payment method")
	}
	if req.Amount <= 0 {
		return nil, dto.NewValidationError("amount", "amount must be positive")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	receipt := req.ReceiptNumber
	if receipt == "" {
		receipt = newReceiptNumber()
	}
	claim := &entity.PaymentClaim{
		Id:                   uuid.New(),
		InvoiceId:            req.InvoiceId,
		SubmittedBy:          adminId,
		Amount:               req.Amount,
		Method:               method,
		TransactionReference: req.Reference,
		PaymentDate:          req.PaymentDate,
		Notes:                req.Notes,
		ReceiptNumber:        receipt,
		Status:               entity.ClaimStatusValidated,
		ValidatedBy:          &adminId,
		ValidationDate:       &now,
	}
	if err := uow.PaymentClaimRepository().Create(ctx, claim); err != nil {
		_ = uow.Rollback()
		return nil, err
	}

	invoice, sub, err := s.creditInvoice(ctx, uow, claim)
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.afterValidation(ctx, claim, invoice, sub)
	return toClaimResponse(claim), nil
}

// ReceiptForInvoice renders the receipt for the invoice's most recent
// validated claim and returns the path of the written artifact.
func (s *paymentService) ReceiptForInvoice(ctx context.Context, invoiceId uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	invoice, err := uow.InvoiceRepository().FindOne(ctx, specification.ByID{ID: invoiceId})
	if err != nil {
		return "", err
	}
	if invoice == nil {
		return "", dto.NewNotFoundError("invoice", invoiceId)
	}

	claims, err := uow.PaymentClaimRepository().FindAll(ctx,
		specification.ByInvoiceID{InvoiceID: invoiceId},
		specification.ByStatus{Status: string(entity.ClaimStatusValidated)},
		specification.OrderBy{Field: "validation_date", Desc: true},
	)
	if err != nil {
		return "", err
	}
	if len(claims) == 0 {
		return "", dto.NewStateConflictError("invoice %s has no validated payment", invoice.InvoiceNumber)
	}
	if s.receipts == nil {
		return "", &dto.ExternalDependencyError{Dependency: "receipt renderer", Err: errors.New("not configured")}
	}
	return s.receipts.RenderReceipt(claims[0], invoice)
}

func (s *paymentService) GetClaim(ctx context.Context, id uuid.UUID) (*dto.ClaimResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	claim, err := uow.PaymentClaimRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, dto.NewNotFoundError("payment claim", id)
	}
	return toClaimResponse(claim), nil
}

func (s *paymentService) ListClaimsForInvoice(ctx context.Context, invoiceId uuid.UUID) ([]*dto.ClaimResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	claims, err := uow.PaymentClaimRepository().FindAll(ctx, specification.ByInvoiceID{InvoiceID: invoiceId})
	if err != nil {
		return nil, err
	}
	return toClaimResponses(claims), nil
}

func (s *paymentService) ListPendingClaims(ctx context.Context) ([]*dto.ClaimResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	claims, err := uow.PaymentClaimRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.ClaimStatusPendingValidation)},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	return toClaimResponses(claims), nil
}

func newReceiptNumber() string {
	return "RCT-" + strings.ToUpper(uuid.New().String()[:8])
}

func toClaimResponse(c *entity.PaymentClaim) *dto.ClaimResponse {
	return &dto.ClaimResponse{
		Id:                   c.Id,
		InvoiceId:            c.InvoiceId,
		SubmittedBy:          c.SubmittedBy,
		Amount:               c.Amount,
		Method:               string(c.Method),
		TransactionReference: c.TransactionReference,
		PaymentDate:          c.PaymentDate,
		Status:               string(c.Status),
		ReceiptNumber:        c.ReceiptNumber,
		ValidatedBy:          c.ValidatedBy,
		ValidationDate:       c.ValidationDate,
		RejectionReason:      c.RejectionReason,
		CreatedAt:            c.CreatedAt,
	}
}

func toClaimResponses(claims []*entity.PaymentClaim) []*dto.ClaimResponse {
	result := make([]*dto.ClaimResponse, 0, len(claims))
	for _, c := range claims {
		result = append(result, toClaimResponse(c))
	}
	return result
}
