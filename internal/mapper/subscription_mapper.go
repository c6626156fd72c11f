package mapper

import (
	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) ToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:                  s.Id,
		OrganizationId:      s.OrganizationId,
		PlanId:              s.PlanId,
		ContactEmail:        s.ContactEmail,
		Status:              entity.SubscriptionStatus(s.Status),
		IsCurrent:           s.IsCurrent,
		SubscribedAt:        s.SubscribedAt,
		TrialStartDate:      s.TrialStartDate,
		TrialEndDate:        s.TrialEndDate,
		CurrentPeriodEnd:    s.CurrentPeriodEnd,
		NextBillingDate:     s.NextBillingDate,
		AmountDue:           s.AmountDue,
		IsProrata:           s.IsProrata,
		ProrataDays:         s.ProrataDays,
		FreeMonthsRemaining: s.FreeMonthsRemaining,
		CancelledAt:         s.CancelledAt,
		CancellationReason:  s.CancellationReason,
		SuspensionReason:    s.SuspensionReason,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) ToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:                  s.Id,
		OrganizationId:      s.OrganizationId,
		PlanId:              s.PlanId,
		ContactEmail:        s.ContactEmail,
		Status:              string(s.Status),
		IsCurrent:           s.IsCurrent,
		SubscribedAt:        s.SubscribedAt,
		TrialStartDate:      s.TrialStartDate,
		TrialEndDate:        s.TrialEndDate,
		CurrentPeriodEnd:    s.CurrentPeriodEnd,
		NextBillingDate:     s.NextBillingDate,
		AmountDue:           s.AmountDue,
		IsProrata:           s.IsProrata,
		ProrataDays:         s.ProrataDays,
		FreeMonthsRemaining: s.FreeMonthsRemaining,
		CancelledAt:         s.CancelledAt,
		CancellationReason:  s.CancellationReason,
		SuspensionReason:    s.SuspensionReason,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
