package model

import (
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubscriptionId uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uniq_subscription_period"`
	InvoiceNumber  string    `gorm:"type:varchar(32);uniqueIndex;not null"`

	PeriodStart    time.Time `gorm:"not null;uniqueIndex:uniq_subscription_period"`
	PeriodEnd      time.Time `gorm:"not null"`
	Amount         int64     `gorm:"not null"`
	IsProrata      bool      `gorm:"not null;default:false"`
	DaysCalculated int       `gorm:"not null;default:0"`
	DueDate        time.Time `gorm:"not null;index"`

	Status    string `gorm:"type:invoice_status;not null;index"`
	TotalPaid int64  `gorm:"not null;default:0"`
	PaidAt    *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceCounter backs the monotonic per-year invoice numbering. The row is
// locked FOR UPDATE while a number is handed out.
type InvoiceCounter struct {
	Year    int   `gorm:"primaryKey"`
	LastSeq int64 `gorm:"not null;default:0"`
}

func (InvoiceCounter) TableName() string {
	return "invoice_counters"
}
