package mapper

import (
	"encoding/json"

	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/model"

	"gorm.io/datatypes"
)

type PlanMapper struct{}

func NewPlanMapper() *PlanMapper {
	return &PlanMapper{}
}

func (m *PlanMapper) ToEntity(p *model.Plan) *entity.Plan {
	if p == nil {
		return nil
	}
	var features []string
	if len(p.Features) > 0 {
		_ = json.Unmarshal(p.Features, &features)
	}
	return &entity.Plan{
		Id:           p.Id,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price,
		BillingCycle: entity.BillingCycle(p.BillingCycle),
		FreeMonths:   p.FreeMonths,
		IsActive:     p.IsActive,
		Features:     features,
		SortOrder:    p.SortOrder,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *PlanMapper) ToModel(p *entity.Plan) *model.Plan {
	if p == nil {
		return nil
	}
	var features datatypes.JSON
	if p.Features != nil {
		raw, _ := json.Marshal(p.Features)
		features = datatypes.JSON(raw)
	}
	return &model.Plan{
		Id:           p.Id,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price,
		BillingCycle: string(p.BillingCycle),
		FreeMonths:   p.FreeMonths,
		IsActive:     p.IsActive,
		Features:     features,
		SortOrder:    p.SortOrder,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
