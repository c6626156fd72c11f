// FILE: internal/service/settings_service.go
package service

import (
	"context"

	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/repository/unitofwork"
)

type ISettingsService interface {
	GetSettings(ctx context.Context) (*dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSettingsService(uowFactory unitofwork.RepositoryFactory) ISettingsService {
	return &settingsService{uowFactory: uowFactory}
}

func (s *settingsService) GetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	settings, err := uow.SettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	settings, err := uow.SettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.TrialDurationDays != nil {
		settings.TrialDurationDays = *req.TrialDurationDays
	}
	if req.AutoSuspendAfterTrial != nil {
		settings.AutoSuspendAfterTrial = *req.AutoSuspendAfterTrial
	}
	if req.GracePeriodDays != nil {
		settings.GracePeriodDays = *req.GracePeriodDays
	}
	if req.RequireSettledOnReactivate != nil {
		settings.RequireSettledOnReactivate = *req.RequireSettledOnReactivate
	}
	if req.ReminderDays != nil {
		reminderDays := make(map[entity.BillingCycle][]int, len(req.ReminderDays))
		for cycle, offsets := range req.ReminderDays {
			parsed := entity.BillingCycle(cycle)
			if !parsed.Valid() {
				return nil, dto.NewValidationError("reminder_days", "unknown billing cycle "+cycle)
			}
			for _, offset := range offsets {
				if offset < 0 {
					return nil, dto.NewValidationError("reminder_days", "offsets must not be negative")
				}
			}
			reminderDays[parsed] = offsets
		}
		settings.ReminderDays = reminderDays
	}

	if err := uow.SettingsRepository().Save(ctx, settings); err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func toSettingsResponse(s *entity.Settings) *dto.SettingsResponse {
	reminderDays := make(map[string][]int, len(s.ReminderDays))
	for cycle, offsets := range s.ReminderDays {
		reminderDays[string(cycle)] = offsets
	}
	return &dto.SettingsResponse{
		TrialDurationDays:          s.TrialDurationDays,
		AutoSuspendAfterTrial:      s.AutoSuspendAfterTrial,
		GracePeriodDays:            s.GracePeriodDays,
		RequireSettledOnReactivate: s.RequireSettledOnReactivate,
		ReminderDays:               reminderDays,
	}
}
