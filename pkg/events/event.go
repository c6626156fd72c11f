package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PAYMENT_VALIDATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Billing lifecycle event codes.
const (
	TypeSubscriptionCreated     = "SUBSCRIPTION_CREATED"
	TypeSubscriptionActivated   = "SUBSCRIPTION_ACTIVATED"
	TypeSubscriptionSuspended   = "SUBSCRIPTION_SUSPENDED"
	TypeSubscriptionCancelled   = "SUBSCRIPTION_CANCELLED"
	TypeSubscriptionReactivated = "SUBSCRIPTION_REACTIVATED"
	TypeTrialExpired            = "TRIAL_EXPIRED"
	TypeInvoiceGenerated        = "INVOICE_GENERATED"
	TypeInvoiceOverdue          = "INVOICE_OVERDUE"
	TypePaymentClaimSubmitted   = "PAYMENT_CLAIM_SUBMITTED"
	TypePaymentValidated        = "PAYMENT_VALIDATED"
	TypePaymentRejected         = "PAYMENT_REJECTED"
	TypeRenewalReminder         = "RENEWAL_REMINDER"
)

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// New builds a BaseEvent stamped with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
