package dto

type SettingsResponse struct {
	TrialDurationDays          int              `json:"trial_duration_days"`
	AutoSuspendAfterTrial      bool             `json:"auto_suspend_after_trial"`
	GracePeriodDays            int              `json:"grace_period_days"`
	RequireSettledOnReactivate bool             `json:"require_settled_on_reactivate"`
	ReminderDays               map[string][]int `json:"reminder_days"`
}

type UpdateSettingsRequest struct {
	TrialDurationDays          *int             `json:"trial_duration_days,omitempty" validate:"omitempty,gte=0"`
	AutoSuspendAfterTrial      *bool            `json:"auto_suspend_after_trial,omitempty"`
	GracePeriodDays            *int             `json:"grace_period_days,omitempty" validate:"omitempty,gte=0"`
	RequireSettledOnReactivate *bool            `json:"require_settled_on_reactivate,omitempty"`
	ReminderDays               map[string][]int `json:"reminder_days,omitempty"`
}
