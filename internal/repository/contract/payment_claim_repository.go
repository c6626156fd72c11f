package contract

import (
	"context"
	"time"

	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/repository/specification"
)

type PaymentClaimRepository interface {
	Create(ctx context.Context, claim *entity.PaymentClaim) error
	Update(ctx context.Context, claim *entity.PaymentClaim) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentClaim, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentClaim, error)

	// SumValidatedBetween totals validated claim amounts whose payment date
	// falls in [from, to).
	SumValidatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}
