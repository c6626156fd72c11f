package memory

import (
	"context"
	"fmt"

	"marketplace-billing-be/internal/repository/contract"
	"marketplace-billing-be/internal/repository/unitofwork"
)

type unitOfWork struct {
	store *Store
	inTx  bool
}

// NewRepositoryFactory returns a unitofwork.RepositoryFactory backed by the
// shared in-memory store.
func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &factory{store: store}
}

type factory struct {
	store *Store
}

func (f *factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.store.txMu.Lock()
	u.store.takeSnapshot()
	u.inTx = true
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.store.dropSnapshot()
	u.inTx = false
	u.store.txMu.Unlock()
	return nil
}

func (u *unitOfWork) Rollback() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to rollback")
	}
	u.store.restoreSnapshot()
	u.inTx = false
	u.store.txMu.Unlock()
	return nil
}

func (u *unitOfWork) PlanRepository() contract.PlanRepository {
	return &PlanRepository{store: u.store}
}

func (u *unitOfWork) SubscriptionRepository() contract.SubscriptionRepository {
	return &SubscriptionRepository{store: u.store}
}

func (u *unitOfWork) InvoiceRepository() contract.InvoiceRepository {
	return &InvoiceRepository{store: u.store}
}

func (u *unitOfWork) PaymentClaimRepository() contract.PaymentClaimRepository {
	return &PaymentClaimRepository{store: u.store}
}

func (u *unitOfWork) SettingsRepository() contract.SettingsRepository {
	return &SettingsRepository{store: u.store}
}

func (u *unitOfWork) ReminderRepository() contract.ReminderRepository {
	return &ReminderRepository{store: u.store}
}
