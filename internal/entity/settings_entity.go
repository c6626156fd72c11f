package entity

import "time"

// Settings is the singleton billing configuration row.
type Settings struct {
	Id                    int
	TrialDurationDays     int
	AutoSuspendAfterTrial bool
	GracePeriodDays       int

	// RequireSettledOnReactivate gates Reactivate(): when true, a suspended
	// subscription cannot be reactivated while unpaid invoices remain.
	RequireSettledOnReactivate bool

	// ReminderDays maps a billing cycle to the descending day-offsets
	// before an invoice due date at which reminders are sent.
	ReminderDays map[BillingCycle][]int

	UpdatedAt time.Time
}

// DefaultSettings matches the values seeded on first boot.
func DefaultSettings() *Settings {
	return &Settings{
		Id:                    1,
		TrialDurationDays:     30,
		AutoSuspendAfterTrial: true,
		GracePeriodDays:       7,
		ReminderDays: map[BillingCycle][]int{
			BillingCycleMonthly:    {7, 3, 1},
			BillingCycleSemesterly: {15, 7, 3},
			BillingCycleAnnually:   {30, 15, 7},
		},
	}
}
