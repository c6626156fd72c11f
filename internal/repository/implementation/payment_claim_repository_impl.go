package implementation

import (
	"context"
	"errors"
	"time"

	"marketplace-billing-be/internal/entity"
	"marketplace-billing-be/internal/mapper"
	"marketplace-billing-be/internal/model"
	"marketplace-billing-be/internal/repository/contract"
	"marketplace-billing-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PaymentClaimRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentClaimMapper
}

func NewPaymentClaimRepository(db *gorm.DB) contract.PaymentClaimRepository {
	return &PaymentClaimRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentClaimMapper(),
	}
}

func (r *PaymentClaimRepositoryImpl) Create(ctx context.Context, claim *entity.PaymentClaim) error {
	m := r.mapper.ToModel(claim)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err, "payment claim")
	}
	*claim = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentClaimRepositoryImpl) Update(ctx context.Context, claim *entity.PaymentClaim) error {
	m := r.mapper.ToModel(claim)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return translateError(err, "payment claim")
	}
	*claim = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentClaimRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentClaim, error) {
	var m model.PaymentClaim
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentClaimRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentClaim, error) {
	var models []*model.PaymentClaim
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.PaymentClaim, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *PaymentClaimRepositoryImpl) SumValidatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.PaymentClaim{}).
		Where("status = ?", string(entity.ClaimStatusValidated)).
		Where("payment_date >= ? AND payment_date < ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
