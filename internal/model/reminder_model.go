package model

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceReminder struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_invoice_reminder"`
	DaysBefore int       `gorm:"not null;uniqueIndex:uniq_invoice_reminder"`
	SentAt     time.Time `gorm:"not null"`
}

func (InvoiceReminder) TableName() string {
	return "invoice_reminders"
}
