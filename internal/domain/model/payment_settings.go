package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCommissionRate は PaymentSettings が無いキュレーターに適用する手数料率
var DefaultCommissionRate = decimal.RequireFromString("0.10")

// PaymentSettings はキュレーターごとの決済設定。初回アクセス時に既定値で作る。
type PaymentSettings struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CuratorID int64 `gorm:"not null;uniqueIndex" json:"curator_id"`

	StripeEnabled bool `gorm:"not null;default:false" json:"stripe_enabled"`
	YapeEnabled   bool `gorm:"not null;default:false" json:"yape_enabled"`
	PlinEnabled   bool `gorm:"not null;default:false" json:"plin_enabled"`

	// ウォレット送金先の表示情報
	YapePhone string `gorm:"type:varchar(30)" json:"yape_phone"`
	YapeQRURL string `gorm:"type:varchar(500)" json:"yape_qr_url"`
	PlinPhone string `gorm:"type:varchar(30)" json:"plin_phone"`
	PlinQRURL string `gorm:"type:varchar(500)" json:"plin_qr_url"`

	Instructions  string        `gorm:"type:text" json:"instructions"`
	DefaultMethod PaymentMethod `gorm:"type:varchar(20)" json:"default_method"`

	// 手数料率（0〜1の小数）。totalAmount × rate がプラットフォーム取り分。
	CommissionRate decimal.Decimal `gorm:"type:numeric(5,4);not null" json:"commission_rate"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// DefaultPaymentSettings はプラットフォーム既定値（全手段OFF・手数料0.10）
func DefaultPaymentSettings(curatorID int64) PaymentSettings {
	return PaymentSettings{
		CuratorID:      curatorID,
		CommissionRate: DefaultCommissionRate,
	}
}

// EnabledMethods は有効化されている決済手段の一覧
func (s PaymentSettings) EnabledMethods() []PaymentMethod {
	methods := make([]PaymentMethod, 0, 3)
	if s.StripeEnabled {
		methods = append(methods, PaymentMethodStripe)
	}
	if s.YapeEnabled {
		methods = append(methods, PaymentMethodYape)
	}
	if s.PlinEnabled {
		methods = append(methods, PaymentMethodPlin)
	}
	return methods
}

// MethodEnabled は指定の決済手段が有効かどうか
func (s PaymentSettings) MethodEnabled(m PaymentMethod) bool {
	switch m {
	case PaymentMethodStripe:
		return s.StripeEnabled
	case PaymentMethodYape:
		return s.YapeEnabled
	case PaymentMethodPlin:
		return s.PlinEnabled
	}
	return false
}
