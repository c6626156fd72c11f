package memory

import (
	"context"
	"sort"
	"time"

	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SubscriptionRepository struct {
	store *Store
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if sub.IsCurrent {
		// Mirrors the partial unique index on (organization_id) WHERE is_current.
		for _, existing := range r.store.subscriptions {
			if existing.OrganizationId == sub.OrganizationId && existing.IsCurrent {
				return dto.NewStateConflictError("subscription already exists")
			}
		}
	}
	if sub.Id == uuid.Nil {
		sub.Id = uuid.New()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	r.store.subscriptions[sub.Id] = *sub
	return nil
}

func (r *SubscriptionRepository) Update(ctx context.Context, sub *entity.Subscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sub.UpdatedAt = time.Now()
	r.store.subscriptions[sub.Id] = *sub
	return nil
}

func (r *SubscriptionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *SubscriptionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Subscription
	for _, s := range r.store.subscriptions {
		s := s
		if matchSubscription(&s, specs) {
			out = append(out, &s)
		}
	}
	desc := false
	for _, s := range specs {
		if o, ok := s.(specification.OrderBy); ok && o.Desc {
			desc = true
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *SubscriptionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func matchSubscription(s *entity.Subscription, specs []specification.Specification) bool {
	for _, raw := range specs {
		switch spec := raw.(type) {
		case specification.ByID:
			if s.Id != spec.ID {
				return false
			}
		case specification.OrganizationOwnedBy:
			if s.OrganizationId != spec.OrganizationID {
				return false
			}
		case specification.CurrentOnly:
			if !s.IsCurrent {
				return false
			}
		case specification.ByStatus:
			if string(s.Status) != spec.Status {
				return false
			}
		case specification.StatusIn:
			found := false
			for _, st := range spec.Statuses {
				if string(s.Status) == st {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.NextBillingDue:
			if s.NextBillingDate.After(spec.Now) {
				return false
			}
		case specification.CreatedBetween:
			if s.CreatedAt.Before(spec.From) || !s.CreatedAt.Before(spec.To) {
				return false
			}
		}
	}
	return true
}
