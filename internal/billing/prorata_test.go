package billing

import (
	"testing"
	"time"

	"marketplace-billing-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlyPlan(price int64) *entity.Plan {
	return &entity.Plan{
		Name:         "Standard",
		Price:        price,
		BillingCycle: entity.BillingCycleMonthly,
		IsActive:     true,
	}
}

func TestComputeProrata_FullPeriodOnFirstDay(t *testing.T) {
	// Scenario A: monthly plan, price=10000, subscribed on day 1 of a
	// 30-day month.
	ref := time.Date(2025, time.April, 1, 10, 30, 0, 0, time.UTC)
	res, err := ComputeProrata(monthlyPlan(10000), ref)
	require.NoError(t, err)

	assert.Equal(t, int64(10000), res.Amount)
	assert.False(t, res.IsProrata)
	assert.Equal(t, 30, res.DaysCalculated)
	assert.Equal(t, time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC), res.PeriodEnd)
}

func TestComputeProrata_MidPeriod(t *testing.T) {
	// Scenario B: same plan, subscribed on day 16 of a 30-day month,
	// 15 days remaining -> round(10000 * 15/30) = 5000.
	ref := time.Date(2025, time.April, 16, 0, 0, 0, 0, time.UTC)
	res, err := ComputeProrata(monthlyPlan(10000), ref)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), res.Amount)
	assert.True(t, res.IsProrata)
	assert.Equal(t, 15, res.DaysCalculated)
}

func TestComputeProrata_LastDayOfMonth(t *testing.T) {
	ref := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	res, err := ComputeProrata(monthlyPlan(31000), ref)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), res.Amount)
	assert.Equal(t, 1, res.DaysCalculated)
	assert.True(t, res.IsProrata)
}

func TestComputeProrata_SemesterAnchoring(t *testing.T) {
	plan := &entity.Plan{Price: 60000, BillingCycle: entity.BillingCycleSemesterly}

	// March sits inside the Jan-Jun semester.
	ref := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	res, err := ComputeProrata(plan, ref)
	require.NoError(t, err)

	assert.True(t, res.IsProrata)
	assert.Equal(t, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), res.PeriodEnd)

	// July 1 starts the second semester exactly.
	ref = time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	res, err = ComputeProrata(plan, ref)
	require.NoError(t, err)

	assert.False(t, res.IsProrata)
	assert.Equal(t, int64(60000), res.Amount)
	assert.Equal(t, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), res.PeriodEnd)
}

func TestComputeProrata_AnnualAnchoring(t *testing.T) {
	plan := &entity.Plan{Price: 120000, BillingCycle: entity.BillingCycleAnnually}

	ref := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	res, err := ComputeProrata(plan, ref)
	require.NoError(t, err)

	assert.False(t, res.IsProrata)
	assert.Equal(t, int64(120000), res.Amount)
	assert.Equal(t, 365, res.DaysCalculated)
}

func TestComputeProrata_BoundsProperty(t *testing.T) {
	// 0 <= amount <= price for every day of the year, every cycle.
	cycles := []entity.BillingCycle{
		entity.BillingCycleMonthly,
		entity.BillingCycleSemesterly,
		entity.BillingCycleAnnually,
	}
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, cycle := range cycles {
		plan := &entity.Plan{Price: 99999, BillingCycle: cycle}
		for d := 0; d < 366; d++ {
			ref := start.AddDate(0, 0, d)
			res, err := ComputeProrata(plan, ref)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.Amount, int64(0))
			assert.LessOrEqual(t, res.Amount, plan.Price)
			assert.True(t, res.PeriodEnd.After(ref.AddDate(0, 0, -1)))
		}
	}
}

func TestComputeProrata_InvalidInputs(t *testing.T) {
	_, err := ComputeProrata(nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidCycle)

	_, err = ComputeProrata(&entity.Plan{BillingCycle: "weekly"}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidCycle)

	_, err = ComputeProrata(&entity.Plan{Price: -1, BillingCycle: entity.BillingCycleMonthly}, time.Now())
	assert.ErrorIs(t, err, ErrNegativePlanPrice)
}

func TestNextPeriod(t *testing.T) {
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	end, days, err := NextPeriod(entity.BillingCycleMonthly, start)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, 31, days)

	end, days, err = NextPeriod(entity.BillingCycleAnnually, start)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, 365, days)
}

func TestMonthlyRevenue(t *testing.T) {
	assert.Equal(t, int64(10000), MonthlyRevenue(10000, entity.BillingCycleMonthly))
	assert.Equal(t, int64(10000), MonthlyRevenue(60000, entity.BillingCycleSemesterly))
	assert.Equal(t, int64(10000), MonthlyRevenue(120000, entity.BillingCycleAnnually))
	// Round-to-nearest per subscription: 100000/12 = 8333.33 -> 8333.
	assert.Equal(t, int64(8333), MonthlyRevenue(100000, entity.BillingCycleAnnually))
}
