// FILE: internal/service/settings_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"marketplace-billing-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_DefaultsAndPatch(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	svc := NewSettingsService(fx.factory)

	settings, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, settings.TrialDurationDays)
	assert.Equal(t, 7, settings.GracePeriodDays)
	assert.True(t, settings.AutoSuspendAfterTrial)
	assert.Equal(t, []int{7, 3, 1}, settings.ReminderDays["monthly"])

	days := 14
	disabled := false
	updated, err := svc.UpdateSettings(context.Background(), &dto.UpdateSettingsRequest{
		TrialDurationDays:     &days,
		AutoSuspendAfterTrial: &disabled,
	})
	require.NoError(t, err)
	assert.Equal(t, 14, updated.TrialDurationDays)
	assert.False(t, updated.AutoSuspendAfterTrial)
	// Untouched fields keep their values.
	assert.Equal(t, 7, updated.GracePeriodDays)
}

func TestUpdateSettings_RejectsBadReminderConfig(t *testing.T) {
	fx := newBillingFixture(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC))
	svc := NewSettingsService(fx.factory)

	_, err := svc.UpdateSettings(context.Background(), &dto.UpdateSettingsRequest{
		ReminderDays: map[string][]int{"weekly": {3, 1}},
	})
	assert.True(t, dto.IsValidation(err))

	_, err = svc.UpdateSettings(context.Background(), &dto.UpdateSettingsRequest{
		ReminderDays: map[string][]int{"monthly": {-1}},
	})
	assert.True(t, dto.IsValidation(err))
}
