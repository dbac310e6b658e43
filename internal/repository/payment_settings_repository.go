package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type PaymentSettingsRepository interface {
	// 無ければ ErrNotFound（既定値の補完は usecase 側）
	FindByCuratorID(ctx context.Context, curatorID int64) (model.PaymentSettings, error)

	Create(ctx context.Context, s model.PaymentSettings) (model.PaymentSettings, error)
	Update(ctx context.Context, s model.PaymentSettings) error
}
