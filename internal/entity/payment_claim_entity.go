package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodWave         PaymentMethod = "wave"
	PaymentMethodOrangeMoney  PaymentMethod = "orange_money"
	PaymentMethodMTNMoney     PaymentMethod = "mtn_money"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodWave, PaymentMethodOrangeMoney,
		PaymentMethodMTNMoney, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// RequiresReference reports whether a transaction reference is mandatory
// for this method. Cash is the only out-of-band method without one.
func (m PaymentMethod) RequiresReference() bool {
	return m != PaymentMethodCash
}

type ClaimStatus string

const (
	ClaimStatusPendingValidation ClaimStatus = "pending_validation"
	ClaimStatusValidated         ClaimStatus = "validated"
	ClaimStatusRejected          ClaimStatus = "rejected"
)

// PaymentClaim is a client-submitted assertion of an out-of-band payment,
// pending admin validation. Once validated or rejected it is immutable.
type PaymentClaim struct {
	Id          uuid.UUID
	InvoiceId   uuid.UUID
	SubmittedBy uuid.UUID

	Amount               int64
	Method               PaymentMethod
	TransactionReference string
	PaymentDate          time.Time
	Notes                string
	ReceiptNumber        string

	Status          ClaimStatus
	ValidatedBy     *uuid.UUID
	ValidationDate  *time.Time
	RejectionReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *PaymentClaim) IsTerminal() bool {
	return c.Status == ClaimStatusValidated || c.Status == ClaimStatusRejected
}
