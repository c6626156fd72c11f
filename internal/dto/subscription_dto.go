package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSubscriptionRequest struct {
	OrganizationId uuid.UUID `json:"organization_id" validate:"required"`
	PlanId         uuid.UUID `json:"plan_id" validate:"required"`
	ContactEmail   string    `json:"contact_email" validate:"omitempty,email"`
}

type SubscriptionResponse struct {
	Id                  uuid.UUID  `json:"id"`
	OrganizationId      uuid.UUID  `json:"organization_id"`
	PlanId              uuid.UUID  `json:"plan_id"`
	PlanName            string     `json:"plan_name,omitempty"`
	ContactEmail        string     `json:"contact_email,omitempty"`
	Status              string     `json:"status"`
	IsCurrent           bool       `json:"is_current"`
	SubscribedAt        time.Time  `json:"subscribed_at"`
	TrialStartDate      time.Time  `json:"trial_start_date"`
	TrialEndDate        time.Time  `json:"trial_end_date"`
	CurrentPeriodEnd    time.Time  `json:"current_period_end"`
	NextBillingDate     time.Time  `json:"next_billing_date"`
	AmountDue           int64      `json:"amount_due"`
	IsProrata           bool       `json:"is_prorata"`
	ProrataDays         int        `json:"prorata_days"`
	FreeMonthsRemaining int        `json:"free_months_remaining"`
	CancelledAt         *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason  string     `json:"cancellation_reason,omitempty"`
}

type SuspendSubscriptionRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type CancelSubscriptionRequest struct {
	Reason string `json:"reason" validate:"required"`
}
