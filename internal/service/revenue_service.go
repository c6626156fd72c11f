// FILE: internal/service/revenue_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace-billing-be/internal/billing"
	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/pkg/clock"
	"marketplace-billing-be/internal/pkg/logger"
	"marketplace-billing-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const statsCacheTTL = 5 * time.Minute

type IRevenueService interface {
	GetStats(ctx context.Context, year int) (*dto.StatsResponse, error)
	GetMonthlyEvolution(ctx context.Context, year int) ([]dto.MonthlyEvolutionEntry, error)
}

type revenueService struct {
	uowFactory unitofwork.RepositoryFactory
	redis      *redis.Client
	clock      clock.Clock
	logger     logger.ILogger
}

func NewRevenueService(uowFactory unitofwork.RepositoryFactory, rdb *redis.Client, clk clock.Clock, log logger.ILogger) IRevenueService {
	return &revenueService{
		uowFactory: uowFactory,
		redis:      rdb,
		clock:      clk,
		logger:     log,
	}
}

// GetStats aggregates the reporting figures for one billing year. Results
// are cached in Redis for a few minutes; all rates fall back to zero when
// their denominator is zero.
func (s *revenueService) GetStats(ctx context.Context, year int) (*dto.StatsResponse, error) {
	cacheKey := fmt.Sprintf("billing:stats:%d", year)
	if cached := s.readCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	totalRevenue, err := uow.PaymentClaimRepository().SumValidatedBetween(ctx, from, to)
	if err != nil {
		return s.degradedStats(year, "validated payments", err), nil
	}

	subs, err := uow.SubscriptionRepository().FindAll(ctx)
	if err != nil {
		return s.degradedStats(year, "subscriptions", err), nil
	}
	planPrices, err := s.planIndex(ctx, uow)
	if err != nil {
		return s.degradedStats(year, "plans", err), nil
	}

	var mrr int64
	var activeCount, trialCount, openCount int
	var cancelledInYear int
	for _, sub := range subs {
		switch sub.Status {
		case entity.SubscriptionStatusActive:
			activeCount++
		case entity.SubscriptionStatusTrial:
			trialCount++
		}
		if sub.Status != entity.SubscriptionStatusCancelled {
			openCount++
		}
		if sub.CancelledAt != nil && !sub.CancelledAt.Before(from) && sub.CancelledAt.Before(to) {
			cancelledInYear++
		}

		if sub.IsCurrent && sub.Status == entity.SubscriptionStatusActive {
			if plan, ok := planPrices[sub.PlanId]; ok {
				mrr += billing.MonthlyRevenue(plan.Price, plan.BillingCycle)
			}
		}
	}

	// ARPU relates the money actually collected in the year to the
	// subscriptions active right now, not to a matched cohort.
	arpu := int64(0)
	if activeCount > 0 {
		arpu = totalRevenue / int64(activeCount)
	}

	churn := 0.0
	if cancelledInYear+openCount > 0 {
		churn = float64(cancelledInYear) / float64(cancelledInYear+openCount) * 100
	}

	// Conversion: of the trials started this year whose trial window has
	// closed, how many escaped trial into a billed state. Organizations
	// still inside their trial are not counted either way.
	now := s.clock.Now()
	var started, converted int
	for _, sub := range subs {
		if sub.CreatedAt.Before(from) || !sub.CreatedAt.Before(to) {
			continue
		}
		if sub.TrialEndDate.After(now) {
			continue
		}
		started++
		switch sub.Status {
		case entity.SubscriptionStatusActive,
			entity.SubscriptionStatusPendingPayment,
			entity.SubscriptionStatusSuspended:
			converted++
		}
	}
	conversion := 0.0
	if started > 0 {
		conversion = float64(converted) / float64(started) * 100
	}

	pendingAmount, pendingCount, err := uow.InvoiceRepository().PendingTotals(ctx)
	if err != nil {
		return s.degradedStats(year, "pending totals", err), nil
	}

	stats := &dto.StatsResponse{
		Year:                  year,
		TotalRevenue:          totalRevenue,
		MRR:                   mrr,
		ARR:                   mrr * 12,
		ARPU:                  arpu,
		ChurnRate:             churn,
		ConversionRate:        conversion,
		ActiveSubscriptions:   activeCount,
		TrialSubscriptions:    trialCount,
		PendingPaymentsAmount: pendingAmount,
		PendingPaymentsCount:  pendingCount,
	}
	s.writeCache(ctx, cacheKey, stats)
	return stats, nil
}

// GetMonthlyEvolution builds the twelve-entry series of subscription and
// revenue movement for a year.
func (s *revenueService) GetMonthlyEvolution(ctx context.Context, year int) ([]dto.MonthlyEvolutionEntry, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	subs, err := uow.SubscriptionRepository().FindAll(ctx)
	if err != nil {
		return s.degradedEvolution(year, "subscriptions", err), nil
	}

	entries := make([]dto.MonthlyEvolutionEntry, 0, 12)
	for month := 1; month <= 12; month++ {
		from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)

		revenue, err := uow.PaymentClaimRepository().SumValidatedBetween(ctx, from, to)
		if err != nil {
			return s.degradedEvolution(year, "validated payments", err), nil
		}

		var created, cancelled, activeAtEnd int
		for _, sub := range subs {
			if !sub.CreatedAt.Before(from) && sub.CreatedAt.Before(to) {
				created++
			}
			if sub.CancelledAt != nil && !sub.CancelledAt.Before(from) && sub.CancelledAt.Before(to) {
				cancelled++
			}
			if sub.CreatedAt.Before(to) && (sub.CancelledAt == nil || !sub.CancelledAt.Before(to)) {
				activeAtEnd++
			}
		}

		entries = append(entries, dto.MonthlyEvolutionEntry{
			Month:                  month,
			NewSubscriptions:       created,
			CancelledSubscriptions: cancelled,
			Revenue:                revenue,
			ActiveAtEndOfMonth:     activeAtEnd,
		})
	}
	return entries, nil
}

// Reporting must never take down a dashboard: a broken store yields the
// zeroed fallback instead of an error.
func (s *revenueService) degradedStats(year int, op string, err error) *dto.StatsResponse {
	s.logger.Error("RevenueService", "Stats aggregation degraded", map[string]interface{}{
		"op":    op,
		"year":  year,
		"error": err.Error(),
	})
	return &dto.StatsResponse{Year: year}
}

func (s *revenueService) degradedEvolution(year int, op string, err error) []dto.MonthlyEvolutionEntry {
	s.logger.Error("RevenueService", "Evolution aggregation degraded", map[string]interface{}{
		"op":    op,
		"year":  year,
		"error": err.Error(),
	})
	return []dto.MonthlyEvolutionEntry{}
}

func (s *revenueService) planIndex(ctx context.Context, uow unitofwork.UnitOfWork) (map[uuid.UUID]*entity.Plan, error) {
	plans, err := uow.PlanRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[uuid.UUID]*entity.Plan, len(plans))
	for _, plan := range plans {
		index[plan.Id] = plan
	}
	return index, nil
}

func (s *revenueService) readCache(ctx context.Context, key string) *dto.StatsResponse {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var stats dto.StatsResponse
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *revenueService) writeCache(ctx context.Context, key string, stats *dto.StatsResponse) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, raw, statsCacheTTL).Err(); err != nil {
		s.logger.Warn("RevenueService", "Stats cache write failed", map[string]interface{}{"error": err.Error()})
	}
}
