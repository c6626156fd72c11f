package memory

import (
	"context"

	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/entity"

	"github.com/google/uuid"
)

type ReminderRepository struct {
	store *Store
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *entity.InvoiceReminder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.reminders {
		if existing.InvoiceId == reminder.InvoiceId && existing.DaysBefore == reminder.DaysBefore {
			return dto.NewStateConflictError("invoice reminder already exists")
		}
	}
	if reminder.Id == uuid.Nil {
		reminder.Id = uuid.New()
	}
	r.store.reminders[reminder.Id] = *reminder
	return nil
}

func (r *ReminderRepository) Exists(ctx context.Context, invoiceId uuid.UUID, daysBefore int) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, existing := range r.store.reminders {
		if existing.InvoiceId == invoiceId && existing.DaysBefore == daysBefore {
			return true, nil
		}
	}
	return false, nil
}

func (r *ReminderRepository) FindAllForInvoice(ctx context.Context, invoiceId uuid.UUID) ([]*entity.InvoiceReminder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.InvoiceReminder
	for _, existing := range r.store.reminders {
		existing := existing
		if existing.InvoiceId == invoiceId {
			out = append(out, &existing)
		}
	}
	return out, nil
}
