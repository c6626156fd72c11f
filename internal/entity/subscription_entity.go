package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusTrial          SubscriptionStatus = "trial"
	SubscriptionStatusActive         SubscriptionStatus = "active"
	SubscriptionStatusPendingPayment SubscriptionStatus = "pending_payment"
	SubscriptionStatusSuspended      SubscriptionStatus = "suspended"
	SubscriptionStatusCancelled      SubscriptionStatus = "cancelled"
)

// Subscription is one organization's recurring plan membership.
// An organization has at most one current subscription (IsCurrent);
// cancelled subscriptions are kept as history and never deleted.
type Subscription struct {
	Id             uuid.UUID
	OrganizationId uuid.UUID
	PlanId         uuid.UUID
	ContactEmail   string
	Status         SubscriptionStatus
	IsCurrent      bool

	SubscribedAt   time.Time
	TrialStartDate time.Time
	TrialEndDate   time.Time

	CurrentPeriodEnd time.Time
	NextBillingDate  time.Time

	AmountDue   int64
	IsProrata   bool
	ProrataDays int

	// Free periods still owed to the organization (granted on its
	// first-ever subscription only).
	FreeMonthsRemaining int

	CancelledAt        *time.Time
	CancellationReason string
	SuspensionReason   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal reports whether the subscription reached its final state.
func (s *Subscription) IsTerminal() bool {
	return s.Status == SubscriptionStatusCancelled
}

// CanTransitionTo enforces the lifecycle state machine:
// trial -> active -> pending_payment -> suspended -> cancelled, with
// cancelled reachable from any non-terminal state and
// active <-> pending_payment as a valid back-edge on payment events.
func (s *Subscription) CanTransitionTo(next SubscriptionStatus) bool {
	if s.Status == SubscriptionStatusCancelled {
		return false
	}
	if next == SubscriptionStatusCancelled {
		return true
	}
	switch s.Status {
	case SubscriptionStatusTrial:
		return next == SubscriptionStatusActive ||
			next == SubscriptionStatusPendingPayment ||
			next == SubscriptionStatusSuspended
	case SubscriptionStatusActive:
		return next == SubscriptionStatusPendingPayment ||
			next == SubscriptionStatusSuspended
	case SubscriptionStatusPendingPayment:
		return next == SubscriptionStatusActive ||
			next == SubscriptionStatusSuspended
	case SubscriptionStatusSuspended:
		return next == SubscriptionStatusActive
	}
	return false
}
