package entity

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Invoice covers one billing period of a subscription. Amount is immutable
// after issue; corrections require a new adjustment invoice. PeriodEnd is
// the inclusive last day of the period.
type Invoice struct {
	Id             uuid.UUID
	SubscriptionId uuid.UUID
	InvoiceNumber  string

	PeriodStart    time.Time
	PeriodEnd      time.Time
	Amount         int64
	IsProrata      bool
	DaysCalculated int
	DueDate        time.Time

	Status    InvoiceStatus
	TotalPaid int64
	PaidAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemainingAmount is always Amount - TotalPaid, floored at zero.
func (i *Invoice) RemainingAmount() int64 {
	remaining := i.Amount - i.TotalPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (i *Invoice) IsSettled() bool {
	return i.TotalPaid >= i.Amount
}
