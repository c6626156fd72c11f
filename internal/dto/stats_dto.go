package dto

// StatsResponse is the reporting surface for a billing year.
type StatsResponse struct {
	Year                  int     `json:"year"`
	TotalRevenue          int64   `json:"total_revenue"`
	MRR                   int64   `json:"mrr"`
	ARR                   int64   `json:"arr"`
	ARPU                  int64   `json:"arpu"`
	ChurnRate             float64 `json:"churn_rate"`
	ConversionRate        float64 `json:"conversion_rate"`
	ActiveSubscriptions   int     `json:"active_subscriptions"`
	TrialSubscriptions    int     `json:"trial_subscriptions"`
	PendingPaymentsAmount int64   `json:"pending_payments_amount"`
	PendingPaymentsCount  int     `json:"pending_payments_count"`
}

// MonthlyEvolutionEntry is one month of the 12-entry yearly series.
type MonthlyEvolutionEntry struct {
	Month                  int   `json:"month"`
	NewSubscriptions       int   `json:"new_subscriptions"`
	CancelledSubscriptions int   `json:"cancelled_subscriptions"`
	Revenue                int64 `json:"revenue"`
	ActiveAtEndOfMonth     int   `json:"active_at_end_of_month"`
}
