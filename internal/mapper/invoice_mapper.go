package mapper

import (
	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/model"
)

type InvoiceMapper struct{}

func NewInvoiceMapper() *InvoiceMapper {
	return &InvoiceMapper{}
}

func (m *InvoiceMapper) ToEntity(i *model.Invoice) *entity.Invoice {
	if i == nil {
		return nil
	}
	return &entity.Invoice{
		Id:             i.Id,
		SubscriptionId: i.SubscriptionId,
		InvoiceNumber:  i.InvoiceNumber,
		PeriodStart:    i.PeriodStart,
		PeriodEnd:      i.PeriodEnd,
		Amount:         i.Amount,
		IsProrata:      i.IsProrata,
		DaysCalculated: i.DaysCalculated,
		DueDate:        i.DueDate,
		Status:         entity.InvoiceStatus(i.Status),
		TotalPaid:      i.TotalPaid,
		PaidAt:         i.PaidAt,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func (m *InvoiceMapper) ToModel(i *entity.Invoice) *model.Invoice {
	if i == nil {
		return nil
	}
	return &model.Invoice{
		Id:             i.Id,
		SubscriptionId: i.SubscriptionId,
		InvoiceNumber:  i.InvoiceNumber,
		PeriodStart:    i.PeriodStart,
		PeriodEnd:      i.PeriodEnd,
		Amount:         i.Amount,
		IsProrata:      i.IsProrata,
		DaysCalculated: i.DaysCalculated,
		DueDate:        i.DueDate,
		Status:         string(i.Status),
		TotalPaid:      i.TotalPaid,
		PaidAt:         i.PaidAt,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
