package contract

import (
	"context"

	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/repository/specification"
)

// PlanRepository persists plans. Plans are never deleted, only disabled
// via IsActive, so no Delete is exposed.
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	Update(ctx context.Context, plan *entity.Plan) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Plan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Plan, error)
}
