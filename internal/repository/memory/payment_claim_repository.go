package memory

import (
	"context"
	"sort"
	"time"

	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PaymentClaimRepository struct {
	store *Store
}

func (r *PaymentClaimRepository) Create(ctx context.Context, claim *entity.PaymentClaim) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if claim.Id == uuid.Nil {
		claim.Id = uuid.New()
	}
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = time.Now()
	}
	r.store.claims[claim.Id] = *claim
	return nil
}

func (r *PaymentClaimRepository) Update(ctx context.Context, claim *entity.PaymentClaim) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	claim.UpdatedAt = time.Now()
	r.store.claims[claim.Id] = *claim
	return nil
}

func (r *PaymentClaimRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentClaim, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *PaymentClaimRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentClaim, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.PaymentClaim
	for _, c := range r.store.claims {
		c := c
		if matchClaim(&c, specs) {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	for _, raw := range specs {
		if spec, ok := raw.(specification.OrderBy); ok && spec.Field == "validation_date" {
			sort.Slice(out, func(i, j int) bool {
				ti, tj := out[i].ValidationDate, out[j].ValidationDate
				if ti == nil || tj == nil {
					return tj == nil
				}
				if spec.Desc {
					return ti.After(*tj)
				}
				return ti.Before(*tj)
			})
		}
	}
	return out, nil
}

func (r *PaymentClaimRepository) SumValidatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var total int64
	for _, c := range r.store.claims {
		if c.Status != entity.ClaimStatusValidated {
			continue
		}
		if c.PaymentDate.Before(from) || !c.PaymentDate.Before(to) {
			continue
		}
		total += c.Amount
	}
	return total, nil
}

func matchClaim(c *entity.PaymentClaim, specs []specification.Specification) bool {
	for _, raw := range specs {
		switch spec := raw.(type) {
		case specification.ByID:
			if c.Id != spec.ID {
				return false
			}
		case specification.ByInvoiceID:
			if c.InvoiceId != spec.InvoiceID {
				return false
			}
		case specification.ByStatus:
			if string(c.Status) != spec.Status {
				return false
			}
		}
	}
	return true
}
