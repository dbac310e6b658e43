package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type PaymentSettingsGormRepository struct {
	db *gorm.DB
}

func NewPaymentSettingsGormRepository(db *gorm.DB) *PaymentSettingsGormRepository {
	return &PaymentSettingsGormRepository{db: db}
}

func (r *PaymentSettingsGormRepository) FindByCuratorID(ctx context.Context, curatorID int64) (model.PaymentSettings, error) {
	var s model.PaymentSettings
	err := r.db.WithContext(ctx).Where("curator_id = ?", curatorID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PaymentSettings{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PaymentSettings{}, err
	}
	return s, nil
}

func (r *PaymentSettingsGormRepository) Create(ctx context.Context, s model.PaymentSettings) (model.PaymentSettings, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.PaymentSettings{}, err
	}
	return s, nil
}

func (r *PaymentSettingsGormRepository) Update(ctx context.Context, s model.PaymentSettings) error {
	res := r.db.WithContext(ctx).Model(&model.PaymentSettings{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"stripe_enabled":  s.StripeEnabled,
			"yape_enabled":    s.YapeEnabled,
			"plin_enabled":    s.PlinEnabled,
			"yape_phone":      s.YapePhone,
			"yape_qr_url":     s.YapeQRURL,
			"plin_phone":      s.PlinPhone,
			"plin_qr_url":     s.PlinQRURL,
			"instructions":    s.Instructions,
			"default_method":  s.DefaultMethod,
			"commission_rate": s.CommissionRate,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
