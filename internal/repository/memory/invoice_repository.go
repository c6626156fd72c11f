package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/repository/specification"

	"github.com/google/uuid"
)

type InvoiceRepository struct {
	store *Store
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	// Mirrors the unique index on (subscription_id, period_start).
	for _, existing := range r.store.invoices {
		if existing.SubscriptionId == invoice.SubscriptionId &&
			sameDay(existing.PeriodStart, invoice.PeriodStart) {
			return dto.NewStateConflictError("invoice already exists")
		}
	}
	if invoice.Id == uuid.Nil {
		invoice.Id = uuid.New()
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now()
	}
	r.store.invoices[invoice.Id] = *invoice
	return nil
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	invoice.UpdatedAt = time.Now()
	r.store.invoices[invoice.Id] = *invoice
	return nil
}

func (r *InvoiceRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *InvoiceRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Invoice
	for _, inv := range r.store.invoices {
		inv := inv
		if matchInvoice(&inv, specs) {
			out = append(out, &inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PeriodStart.Before(out[j].PeriodStart)
	})
	return out, nil
}

func (r *InvoiceRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func (r *InvoiceRepository) NextInvoiceNumber(ctx context.Context, year int) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.invoiceSeq[year]++
	return fmt.Sprintf("INV-%d-%06d", year, r.store.invoiceSeq[year]), nil
}

func (r *InvoiceRepository) PendingTotals(ctx context.Context) (int64, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var amount int64
	var count int
	for _, inv := range r.store.invoices {
		if inv.Status == entity.InvoiceStatusPending || inv.Status == entity.InvoiceStatusOverdue {
			amount += inv.Amount - inv.TotalPaid
			count++
		}
	}
	return amount, count, nil
}

func matchInvoice(i *entity.Invoice, specs []specification.Specification) bool {
	for _, raw := range specs {
		switch spec := raw.(type) {
		case specification.ByID:
			if i.Id != spec.ID {
				return false
			}
		case specification.BySubscriptionID:
			if i.SubscriptionId != spec.SubscriptionID {
				return false
			}
		case specification.ByStatus:
			if string(i.Status) != spec.Status {
				return false
			}
		case specification.StatusIn:
			found := false
			for _, st := range spec.Statuses {
				if string(i.Status) == st {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.PeriodStartOn:
			if !sameDay(i.PeriodStart, spec.Date) {
				return false
			}
		case specification.DueOnOrBefore:
			if i.DueDate.After(spec.Date) {
				return false
			}
		}
	}
	return true
}
