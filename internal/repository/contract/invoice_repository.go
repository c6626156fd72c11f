package contract

import (
	"context"

	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/repository/specification"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	Update(ctx context.Context, invoice *entity.Invoice) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// NextInvoiceNumber hands out the next monotonic number for the year,
	// locking the counter row for the duration of the transaction.
	NextInvoiceNumber(ctx context.Context, year int) (string, error)

	// PendingTotals sums amount still owed across pending and overdue
	// invoices (dashboard figure).
	PendingTotals(ctx context.Context) (amount int64, count int, err error)
}
