// Package memory provides in-memory implementations of the repository
// contracts for unit tests. A subset of query specifications is
// interpreted by type switch; unknown specifications are ignored.
package memory

import (
	"sync"
	"time"

	"marketplace-billing-be/internal/entity"

	"github.com/google/uuid"
)

// Store is the shared backing state for all memory repositories.
// txMu serializes units of work the way row locks serialize concurrent
// claim validations against one database row.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	plans         map[uuid.UUID]entity.Plan
	subscriptions map[uuid.UUID]entity.Subscription
	invoices      map[uuid.UUID]entity.Invoice
	claims        map[uuid.UUID]entity.PaymentClaim
	reminders     map[uuid.UUID]entity.InvoiceReminder
	settings      *entity.Settings

	invoiceSeq map[int]int64

	snapshot *storeSnapshot
}

type storeSnapshot struct {
	plans         map[uuid.UUID]entity.Plan
	subscriptions map[uuid.UUID]entity.Subscription
	invoices      map[uuid.UUID]entity.Invoice
	claims        map[uuid.UUID]entity.PaymentClaim
	reminders     map[uuid.UUID]entity.InvoiceReminder
	settings      *entity.Settings
	invoiceSeq    map[int]int64
}

func NewStore() *Store {
	return &Store{
		plans:         make(map[uuid.UUID]entity.Plan),
		subscriptions: make(map[uuid.UUID]entity.Subscription),
		invoices:      make(map[uuid.UUID]entity.Invoice),
		claims:        make(map[uuid.UUID]entity.PaymentClaim),
		reminders:     make(map[uuid.UUID]entity.InvoiceReminder),
		invoiceSeq:    make(map[int]int64),
	}
}

func (s *Store) takeSnapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &storeSnapshot{
		plans:         clonePlanMap(s.plans),
		subscriptions: cloneSubscriptionMap(s.subscriptions),
		invoices:      cloneInvoiceMap(s.invoices),
		claims:        cloneClaimMap(s.claims),
		reminders:     cloneReminderMap(s.reminders),
		settings:      s.settings,
		invoiceSeq:    cloneSeqMap(s.invoiceSeq),
	}
}

func (s *Store) dropSnapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
}

func (s *Store) restoreSnapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return
	}
	s.plans = s.snapshot.plans
	s.subscriptions = s.snapshot.subscriptions
	s.invoices = s.snapshot.invoices
	s.claims = s.snapshot.claims
	s.reminders = s.snapshot.reminders
	s.settings = s.snapshot.settings
	s.invoiceSeq = s.snapshot.invoiceSeq
	s.snapshot = nil
}

func clonePlanMap(in map[uuid.UUID]entity.Plan) map[uuid.UUID]entity.Plan {
	out := make(map[uuid.UUID]entity.Plan, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneSubscriptionMap(in map[uuid.UUID]entity.Subscription) map[uuid.UUID]entity.Subscription {
	out := make(map[uuid.UUID]entity.Subscription, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneInvoiceMap(in map[uuid.UUID]entity.Invoice) map[uuid.UUID]entity.Invoice {
	out := make(map[uuid.UUID]entity.Invoice, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneClaimMap(in map[uuid.UUID]entity.PaymentClaim) map[uuid.UUID]entity.PaymentClaim {
	out := make(map[uuid.UUID]entity.PaymentClaim, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneReminderMap(in map[uuid.UUID]entity.InvoiceReminder) map[uuid.UUID]entity.InvoiceReminder {
	out := make(map[uuid.UUID]entity.InvoiceReminder, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneSeqMap(in map[int]int64) map[int]int64 {
	out := make(map[int]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
