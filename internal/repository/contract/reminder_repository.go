package contract

import (
	"context"

	"marketplace-billing-be/internal/entity"

	"github.com/google/uuid"
)

// ReminderRepository is the persisted dedup table for invoice reminders.
type ReminderRepository interface {
	// Create inserts the dedup row; a duplicate (invoice, offset) pair
	// yields a StateConflictError.
	Create(ctx context.Context, reminder *entity.InvoiceReminder) error
	Exists(ctx context.Context, invoiceId uuid.UUID, daysBefore int) (bool, error)
	FindAllForInvoice(ctx context.Context, invoiceId uuid.UUID) ([]*entity.InvoiceReminder, error)
}
