// FILE: internal/service/plan_service.go
package service

import (
	"context"
	"time"

	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/repository/specification"
	"marketplace-billing-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const activePlansCacheKey = "plans:active"

type PlanService interface {
	// Public
	GetActivePlans(ctx context.Context) ([]*dto.PlanResponse, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*dto.PlanResponse, error)

	// Admin
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error)
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory) PlanService {
	return &planService{
		uowFactory: uowFactory,
		cache:      gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// GetActivePlans returns the public pricing catalog. The list is small and
// read constantly, so it is served from an in-process cache.
func (s *planService) GetActivePlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	if cached, found := s.cache.Get(activePlansCacheKey); found {
		return cached.([]*dto.PlanResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.PlanRepository().FindAll(ctx, specification.OrderBy{Field: "sort_order"})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		if !plan.IsActive {
			continue
		}
		result = append(result, toPlanResponse(plan))
	}

	s.cache.Set(activePlansCacheKey, result, gocache.DefaultExpiration)
	return result, nil
}

func (s *planService) GetPlan(ctx context.Context, id uuid.UUID) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, dto.NewNotFoundError("plan", id)
	}
	return toPlanResponse(plan), nil
}

func (s *planService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	cycle := entity.BillingCycle(req.BillingCycle)
	if !cycle.Valid() {
		return nil, dto.NewValidationError("billing_cycle", "unknown billing cycle")
	}
	if req.Price < 0 {
		return nil, dto.NewValidationError("price", "price must not be negative")
	}

	plan := &entity.Plan{
		Id:           uuid.New(),
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		Price:        req.Price,
		BillingCycle: cycle,
		FreeMonths:   req.FreeMonths,
		IsActive:     true,
		Features:     req.Features,
		SortOrder:    req.SortOrder,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PlanRepository().Create(ctx, plan); err != nil {
		return nil, err
	}

	s.cache.Delete(activePlansCacheKey)
	return toPlanResponse(plan), nil
}

// UpdatePlan patches mutable plan fields. Price and billing cycle are
// immutable once a plan exists: changing them would silently reprice
// running subscriptions.
func (s *planService) UpdatePlan(ctx context.Context, id uuid.UUID, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, dto.NewNotFoundError("plan", id)
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Features != nil {
		plan.Features = req.Features
	}
	if req.SortOrder != nil {
		plan.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := uow.PlanRepository().Update(ctx, plan); err != nil {
		return nil, err
	}

	s.cache.Delete(activePlansCacheKey)
	return toPlanResponse(plan), nil
}

func toPlanResponse(p *entity.Plan) *dto.PlanResponse {
	return &dto.PlanResponse{
		Id:           p.Id,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price,
		BillingCycle: string(p.BillingCycle),
		FreeMonths:   p.FreeMonths,
		IsActive:     p.IsActive,
		Features:     p.Features,
		SortOrder:    p.SortOrder,
		CreatedAt:    p.CreatedAt,
	}
}
