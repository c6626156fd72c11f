package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationOwnedBy filters subscriptions by owning organization.
type OrganizationOwnedBy struct {
	OrganizationID uuid.UUID
}

func (s OrganizationOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("organization_id = ?", s.OrganizationID)
}

// CurrentOnly keeps only the organization's current subscription.
type CurrentOnly struct{}

func (s CurrentOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_current = ?", true)
}

// ByStatus filters by a single status column value.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// StatusIn filters by a set of status values.
type StatusIn struct {
	Statuses []string
}

func (s StatusIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

// BySubscriptionID filters invoices or claims by subscription.
type BySubscriptionID struct {
	SubscriptionID uuid.UUID
}

func (s BySubscriptionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subscription_id = ?", s.SubscriptionID)
}

// ByInvoiceID filters claims or reminders by invoice.
type ByInvoiceID struct {
	InvoiceID uuid.UUID
}

func (s ByInvoiceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("invoice_id = ?", s.InvoiceID)
}

// PeriodStartOn pins an invoice to its billing period start day.
type PeriodStartOn struct {
	Date time.Time
}

func (s PeriodStartOn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("period_start = ?", s.Date)
}

// NextBillingDue selects subscriptions whose rollover is due.
type NextBillingDue struct {
	Now time.Time
}

func (s NextBillingDue) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("next_billing_date <= ?", s.Now)
}

// DueOnOrBefore selects invoices due up to a date.
type DueOnOrBefore struct {
	Date time.Time
}

func (s DueOnOrBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("due_date <= ?", s.Date)
}

// CreatedBetween bounds a record's creation timestamp.
type CreatedBetween struct {
	From time.Time
	To   time.Time
}

func (s CreatedBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ? AND created_at < ?", s.From, s.To)
}
