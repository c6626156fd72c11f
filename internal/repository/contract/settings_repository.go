package contract

import (
	"context"

	"marketplace-billing-be/internal/entity"
)

// SettingsRepository reads and writes the singleton settings row.
// Get returns defaults when the row has not been seeded yet.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}
