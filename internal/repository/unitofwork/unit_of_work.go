package unitofwork

import (
	"context"

	"marketplace-billing-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to a single request and, between
// Begin and Commit, to a single database transaction. Claim validation
// relies on this: claim, invoice and subscription updates commit together
// or not at all.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PlanRepository() contract.PlanRepository
	SubscriptionRepository() contract.SubscriptionRepository
	InvoiceRepository() contract.InvoiceRepository
	PaymentClaimRepository() contract.PaymentClaimRepository
	SettingsRepository() contract.SettingsRepository
	ReminderRepository() contract.ReminderRepository
}
