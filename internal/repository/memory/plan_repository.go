package memory

import (
	"context"
	"sort"
	"time"

	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PlanRepository struct {
	store *Store
}

func (r *PlanRepository) Create(ctx context.Context, plan *entity.Plan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if plan.Id == uuid.Nil {
		plan.Id = uuid.New()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}
	r.store.plans[plan.Id] = *plan
	return nil
}

func (r *PlanRepository) Update(ctx context.Context, plan *entity.Plan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	plan.UpdatedAt = time.Now()
	r.store.plans[plan.Id] = *plan
	return nil
}

func (r *PlanRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Plan, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *PlanRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Plan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Plan
	for _, p := range r.store.plans {
		p := p
		if matchPlan(&p, specs) {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func matchPlan(p *entity.Plan, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if p.Id != spec.ID {
				return false
			}
		}
	}
	return true
}
