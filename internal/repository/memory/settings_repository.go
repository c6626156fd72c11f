package memory

import (
	"context"

	"marketplace-billing-be/internal/entity"
)

type SettingsRepository struct {
	store *Store
}

func (r *SettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if r.store.settings == nil {
		return entity.DefaultSettings(), nil
	}
	copied := *r.store.settings
	return &copied, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings *entity.Settings) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	settings.Id = 1
	copied := *settings
	r.store.settings = &copied
	return nil
}
