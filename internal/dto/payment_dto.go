package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitClaimRequest struct {
	InvoiceId            uuid.UUID `json:"invoice_id" validate:"required"`
	Amount               int64     `json:"amount" validate:"required,gt=0"`
	Method               string    `json:"method" validate:"required,oneof=cash wave orange_money mtn_money bank_transfer"`
	TransactionReference string    `json:"transaction_reference,omitempty"`
	PaymentDate          time.Time `json:"payment_date" validate:"required"`
	Notes                string    `json:"notes,omitempty"`
}

type RejectClaimRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// DirectPaymentRequest lets an admin record an out-of-band payment without
// a prior client claim.
type DirectPaymentRequest struct {
	InvoiceId     uuid.UUID `json:"invoice_id" validate:"required"`
	Amount        int64     `json:"amount" validate:"required,gt=0"`
	Method        string    `json:"method" validate:"required,oneof=cash wave orange_money mtn_money bank_transfer"`
	PaymentDate   time.Time `json:"payment_date" validate:"required"`
	ReceiptNumber string    `json:"receipt_number,omitempty"`
	Reference     string    `json:"reference,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

type ClaimResponse struct {
	Id                   uuid.UUID  `json:"id"`
	InvoiceId            uuid.UUID  `json:"invoice_id"`
	SubmittedBy          uuid.UUID  `json:"submitted_by"`
	Amount               int64      `json:"amount"`
	Method               string     `json:"method"`
	TransactionReference string     `json:"transaction_reference,omitempty"`
	PaymentDate          time.Time  `json:"payment_date"`
	Status               string     `json:"status"`
	ReceiptNumber        string     `json:"receipt_number,omitempty"`
	ValidatedBy          *uuid.UUID `json:"validated_by,omitempty"`
	ValidationDate       *time.Time `json:"validation_date,omitempty"`
	RejectionReason      string     `json:"rejection_reason,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}
