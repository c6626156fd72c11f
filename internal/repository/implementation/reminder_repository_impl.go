package implementation

import (
	"context"

	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/mapper"
	"marketplace-billing-be/internal/model"
	"marketplace-billing-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReminderMapper
}

func NewReminderRepository(db *gorm.DB) contract.ReminderRepository {
	return &ReminderRepositoryImpl{
		db:     db,
		mapper: mapper.NewReminderMapper(),
	}
}

func (r *ReminderRepositoryImpl) Create(ctx context.Context, reminder *entity.InvoiceReminder) error {
	m := r.mapper.ToModel(reminder)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err, "invoice reminder")
	}
	*reminder = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReminderRepositoryImpl) Exists(ctx context.Context, invoiceId uuid.UUID, daysBefore int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InvoiceReminder{}).
		Where("invoice_id = ? AND days_before = ?", invoiceId, daysBefore).
		Count(&count).Error
	return count > 0, err
}

func (r *ReminderRepositoryImpl) FindAllForInvoice(ctx context.Context, invoiceId uuid.UUID) ([]*entity.InvoiceReminder, error) {
	var models []*model.InvoiceReminder
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceId).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.InvoiceReminder, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
