package implementation

import (
	"context"
	"errors"

	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/mapper"
	"marketplace-billing-be/internal/model"
	"marketplace-billing-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SettingsRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SettingsMapper
}

func NewSettingsRepository(db *gorm.DB) contract.SettingsRepository {
	return &SettingsRepositoryImpl{
		db:     db,
		mapper: mapper.NewSettingsMapper(),
	}
}

func (r *SettingsRepositoryImpl) Get(ctx context.Context) (*entity.Settings, error) {
	var m model.Settings
	err := r.db.WithContext(ctx).First(&m, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SettingsRepositoryImpl) Save(ctx context.Context, settings *entity.Settings) error {
	settings.Id = 1
	m := r.mapper.ToModel(settings)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*settings = *r.mapper.ToEntity(m)
	return nil
}
