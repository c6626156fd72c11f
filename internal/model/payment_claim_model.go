package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentClaim struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceId   uuid.UUID `gorm:"type:uuid;not null;index"`
	SubmittedBy uuid.UUID `gorm:"type:uuid;not null;index"`

	Amount               int64     `gorm:"not null"`
	Method               string    `gorm:"type:payment_method;not null"`
	TransactionReference string    `gorm:"type:varchar(255)"`
	PaymentDate          time.Time `gorm:"not null"`
	Notes                string    `gorm:"type:text"`
	ReceiptNumber        string    `gorm:"type:varchar(64)"`

	Status          string `gorm:"type:claim_status;not null;index"`
	ValidatedBy     *uuid.UUID
	ValidationDate  *time.Time
	RejectionReason string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (PaymentClaim) TableName() string {
	return "payment_claims"
}
