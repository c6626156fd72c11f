package implementation

import (
	"context"
	"errors"
	"fmt"

	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/mapper"
	"marketplace-billing-be/internal/model"
	"marketplace-billing-be/internal/repository/contract"
	"marketplace-billing-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InvoiceMapper
}

func NewInvoiceRepository(db *gorm.DB) contract.InvoiceRepository {
	return &InvoiceRepositoryImpl{
		db:     db,
		mapper: mapper.NewInvoiceMapper(),
	}
}

func (r *InvoiceRepositoryImpl) Create(ctx context.Context, invoice *entity.Invoice) error {
	m := r.mapper.ToModel(invoice)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err, "invoice")
	}
	*invoice = *r.mapper.ToEntity(m)
	return nil
}

func (r *InvoiceRepositoryImpl) Update(ctx context.Context, invoice *entity.Invoice) error {
	m := r.mapper.ToModel(invoice)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return translateError(err, "invoice")
	}
	*invoice = *r.mapper.ToEntity(m)
	return nil
}

func (r *InvoiceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error) {
	var m model.Invoice
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InvoiceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error) {
	var models []*model.Invoice
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Invoice, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *InvoiceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Invoice{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

func (r *InvoiceRepositoryImpl) NextInvoiceNumber(ctx context.Context, year int) (string, error) {
	var counter model.InvoiceCounter
	tx := r.db.WithContext(ctx)

	// Lock the year's counter row; create it on first use.
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&counter, "year = ?", year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = model.InvoiceCounter{Year: year, LastSeq: 0}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&counter).Error; err != nil {
			return "", err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&counter, "year = ?", year).Error; err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}

	counter.LastSeq++
	if err := tx.Save(&counter).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%06d", year, counter.LastSeq), nil
}

func (r *InvoiceRepositoryImpl) PendingTotals(ctx context.Context) (int64, int, error) {
	type row struct {
		Amount int64
		Count  int64
	}
	var res row
	err := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("status IN ?", []string{string(entity.InvoiceStatusPending), string(entity.InvoiceStatusOverdue)}).
		Select("COALESCE(SUM(amount - total_paid), 0) AS amount, COUNT(*) AS count").
		Scan(&res).Error
	if err != nil {
		return 0, 0, err
	}
	return res.Amount, int(res.Count), nil
}
