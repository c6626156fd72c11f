package dto

// NotificationMessage is the payload carried on the in-process dispatch
// topic. The consumer decides the delivery channel from EventType.
type NotificationMessage struct {
	EventType     string `json:"event_type"`
	Email         string `json:"email,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
	Amount        int64  `json:"amount,omitempty"`
	DueDate       string `json:"due_date,omitempty"`
	DaysLeft      int    `json:"days_left,omitempty"`
	Reason        string `json:"reason,omitempty"`
}
