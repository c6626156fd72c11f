package dto

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceResponse struct {
	Id              uuid.UUID  `json:"id"`
	SubscriptionId  uuid.UUID  `json:"subscription_id"`
	InvoiceNumber   string     `json:"invoice_number"`
	PeriodStart     time.Time  `json:"period_start"`
	PeriodEnd       time.Time  `json:"period_end"`
	Amount          int64      `json:"amount"`
	IsProrata       bool       `json:"is_prorata"`
	DaysCalculated  int        `json:"days_calculated"`
	DueDate         time.Time  `json:"due_date"`
	Status          string     `json:"status"`
	TotalPaid       int64      `json:"total_paid"`
	RemainingAmount int64      `json:"remaining_amount"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
}
