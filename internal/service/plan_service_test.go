// FILE: internal/service/plan_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"marketplace-billing-be/internal/dto"
	"marketplace-billing-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanService_CreateAndList(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	svc := NewPlanService(fx.factory)

	created, err := svc.CreatePlan(context.Background(), &dto.CreatePlanRequest{
		Name:         "Starter",
		Slug:         "starter",
		Price:        15000,
		BillingCycle: "monthly",
	})
	require.NoError(t, err)
	assert.Equal(t, "starter", created.Slug)
	assert.True(t, created.IsActive)

	plans, err := svc.GetActivePlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, created.Id, plans[0].Id)
}

func TestPlanService_UpdateKeepsPriceAndCycleImmutable(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	svc := NewPlanService(fx.factory)
	plan := fx.seedPlan(t, 60000, entity.BillingCycleSemesterly, 1)

	name := "Renamed"
	inactive := false
	updated, err := svc.UpdatePlan(context.Background(), plan.Id, &dto.UpdatePlanRequest{
		Name:     &name,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.False(t, updated.IsActive)
	// Price and cycle are fixed at creation; repricing means a new plan.
	assert.Equal(t, int64(60000), updated.Price)
	assert.Equal(t, "semesterly", updated.BillingCycle)
	assert.Equal(t, 1, updated.FreeMonths)
}
