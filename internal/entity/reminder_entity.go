package entity

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceReminder records that a reminder was emitted for an invoice at a
// given day-offset before its due date. The (InvoiceId, DaysBefore) pair is
// unique so duplicate scheduler ticks cannot re-send the same reminder.
type InvoiceReminder struct {
	Id         uuid.UUID
	InvoiceId  uuid.UUID
	DaysBefore int
	SentAt     time.Time
}
