package mapper

import (
	"encoding/json"

	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/model"

	"gorm.io/datatypes"
)

type SettingsMapper struct{}

func NewSettingsMapper() *SettingsMapper {
	return &SettingsMapper{}
}

func (m *SettingsMapper) ToEntity(s *model.Settings) *entity.Settings {
	if s == nil {
		return nil
	}
	reminderDays := map[entity.BillingCycle][]int{}
	if len(s.ReminderDays) > 0 {
		_ = json.Unmarshal(s.ReminderDays, &reminderDays)
	}
	return &entity.Settings{
		Id:                         s.Id,
		TrialDurationDays:          s.TrialDurationDays,
		AutoSuspendAfterTrial:      s.AutoSuspendAfterTrial,
		GracePeriodDays:            s.GracePeriodDays,
		RequireSettledOnReactivate: s.RequireSettledOnReactivate,
		ReminderDays:               reminderDays,
		UpdatedAt:                  s.UpdatedAt,
	}
}

func (m *SettingsMapper) ToModel(s *entity.Settings) *model.Settings {
	if s == nil {
		return nil
	}
	var reminderDays datatypes.JSON
	if s.ReminderDays != nil {
		raw, _ := json.Marshal(s.ReminderDays)
		reminderDays = datatypes.JSON(raw)
	}
	return &model.Settings{
		Id:                         s.Id,
		TrialDurationDays:          s.TrialDurationDays,
		AutoSuspendAfterTrial:      s.AutoSuspendAfterTrial,
		GracePeriodDays:            s.GracePeriodDays,
		RequireSettledOnReactivate: s.RequireSettledOnReactivate,
		ReminderDays:               reminderDays,
		UpdatedAt:                  s.UpdatedAt,
	}
}

type ReminderMapper struct{}

func NewReminderMapper() *ReminderMapper {
	return &ReminderMapper{}
}

func (m *ReminderMapper) ToEntity(r *model.InvoiceReminder) *entity.InvoiceReminder {
	if r == nil {
		return nil
	}
	return &entity.InvoiceReminder{
		Id:         r.Id,
		InvoiceId:  r.InvoiceId,
		DaysBefore: r.DaysBefore,
		SentAt:     r.SentAt,
	}
}

func (m *ReminderMapper) ToModel(r *entity.InvoiceReminder) *model.InvoiceReminder {
	if r == nil {
		return nil
	}
	return &model.InvoiceReminder{
		Id:         r.Id,
		InvoiceId:  r.InvoiceId,
		DaysBefore: r.DaysBefore,
		SentAt:     r.SentAt,
	}
}
