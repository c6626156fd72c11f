package mapper

import (
	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/model"
)

type PaymentClaimMapper struct{}

func NewPaymentClaimMapper() *PaymentClaimMapper {
	return &PaymentClaimMapper{}
}

func (m *PaymentClaimMapper) ToEntity(c *model.PaymentClaim) *entity.PaymentClaim {
	if c == nil {
		return nil
	}
	return &entity.PaymentClaim{
		Id:                   c.Id,
		InvoiceId:            c.InvoiceId,
		SubmittedBy:          c.SubmittedBy,
		Amount:               c.Amount,
		Method:               entity.PaymentMethod(c.Method),
		TransactionReference: c.TransactionReference,
		PaymentDate:          c.PaymentDate,
		Notes:                c.Notes,
		ReceiptNumber:        c.ReceiptNumber,
		Status:               entity.ClaimStatus(c.Status),
		ValidatedBy:          c.ValidatedBy,
		ValidationDate:       c.ValidationDate,
		RejectionReason:      c.RejectionReason,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func (m *PaymentClaimMapper) ToModel(c *entity.PaymentClaim) *model.PaymentClaim {
	if c == nil {
		return nil
	}
	return &model.PaymentClaim{
		Id:                   c.Id,
		InvoiceId:            c.InvoiceId,
		SubmittedBy:          c.SubmittedBy,
		Amount:               c.Amount,
		Method:               string(c.Method),
		TransactionReference: c.TransactionReference,
		PaymentDate:          c.PaymentDate,
		Notes:                c.Notes,
		ReceiptNumber:        c.ReceiptNumber,
		Status:               string(c.Status),
		ValidatedBy:          c.ValidatedBy,
		ValidationDate:       c.ValidationDate,
		RejectionReason:      c.RejectionReason,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}
