package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// PaymentSettingsUsecase はキュレーターの決済設定と公開参照。
type PaymentSettingsUsecase struct {
	settings repo.PaymentSettingsRepository
	log      *zap.Logger
}

func NewPaymentSettingsUsecase(settings repo.PaymentSettingsRepository, log *zap.Logger) *PaymentSettingsUsecase {
	return &PaymentSettingsUsecase{settings: settings, log: log}
}

type PaymentMethodInfo struct {
	Method       string `json:"method"`
	Phone        string `json:"phone,omitempty"`
	QRURL        string `json:"qr_url,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type PublicPaymentMethodsOutput struct {
	CuratorID      int64               `json:"curator_id"`
	Methods        []PaymentMethodInfo `json:"methods"`
	DefaultMethod  string              `json:"default_method,omitempty"`
	CommissionRate string              `json:"commission_rate"`
}

// GetPublicMethods は購入ページ用の公開参照。
// 設定行が無い・読めないときも有効手段ゼロ＋既定手数料0.10へ必ず劣化させる
// （チェックアウト画面をエラーで落とさない）。
func (u *PaymentSettingsUsecase) GetPublicMethods(ctx context.Context, curatorID int64) PublicPaymentMethodsOutput {
	out := PublicPaymentMethodsOutput{
		CuratorID:      curatorID,
		Methods:        []PaymentMethodInfo{},
		CommissionRate: model.DefaultCommissionRate.String(),
	}
	if curatorID <= 0 {
		return out
	}

	s, err := u.settings.FindByCuratorID(ctx, curatorID)
	if errors.Is(err, repo.ErrNotFound) {
		return out
	}
	if err != nil {
		u.log.Warn("payment settings lookup failed, degrading to defaults",
			zap.Int64("curator_id", curatorID),
			zap.Error(err),
		)
		return out
	}

	for _, m := range s.EnabledMethods() {
		info := PaymentMethodInfo{Method: string(m)}
		switch m {
		case model.PaymentMethodYape:
			info.Phone = s.YapePhone
			info.QRURL = s.YapeQRURL
			info.Instructions = s.Instructions
		case model.PaymentMethodPlin:
			info.Phone = s.PlinPhone
			info.QRURL = s.PlinQRURL
			info.Instructions = s.Instructions
		}
		out.Methods = append(out.Methods, info)
	}
	out.DefaultMethod = string(s.DefaultMethod)
	out.CommissionRate = s.CommissionRate.String()
	return out
}

// GetMySettings は自分の設定を返す。無ければ既定値で作る（遅延作成）。
func (u *PaymentSettingsUsecase) GetMySettings(ctx context.Context, curatorID int64) (model.PaymentSettings, error) {
	if curatorID <= 0 {
		return model.PaymentSettings{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	s, err := u.settings.FindByCuratorID(ctx, curatorID)
	if errors.Is(err, repo.ErrNotFound) {
		created, err := u.settings.Create(ctx, model.DefaultPaymentSettings(curatorID))
		if err != nil {
			return model.PaymentSettings{}, internalError(u.log, "settings.lazy_create", err)
		}
		return created, nil
	}
	if err != nil {
		return model.PaymentSettings{}, internalError(u.log, "settings.find", err)
	}
	return s, nil
}

// UpdateSettingsInput は許可フィールドだけを持つ型付き部分更新。
// nilのフィールドは変更しない。
type UpdateSettingsInput struct {
	StripeEnabled *bool `json:"stripe_enabled"`
	YapeEnabled   *bool `json:"yape_enabled"`
	PlinEnabled   *bool `json:"plin_enabled"`

	YapePhone *string `json:"yape_phone"`
	YapeQRURL *string `json:"yape_qr_url"`
	PlinPhone *string `json:"plin_phone"`
	PlinQRURL *string `json:"plin_qr_url"`

	Instructions  *string `json:"instructions"`
	DefaultMethod *string `json:"default_method"`

	CommissionRate *string `json:"commission_rate"`
}

func (u *PaymentSettingsUsecase) UpdateSettings(ctx context.Context, curatorID int64, in UpdateSettingsInput) (model.PaymentSettings, error) {
	s, err := u.GetMySettings(ctx, curatorID)
	if err != nil {
		return model.PaymentSettings{}, err
	}

	if in.StripeEnabled != nil {
		s.StripeEnabled = *in.StripeEnabled
	}
	if in.YapeEnabled != nil {
		s.YapeEnabled = *in.YapeEnabled
	}
	if in.PlinEnabled != nil {
		s.PlinEnabled = *in.PlinEnabled
	}
	if in.YapePhone != nil {
		s.YapePhone = strings.TrimSpace(*in.YapePhone)
	}
	if in.YapeQRURL != nil {
		s.YapeQRURL = strings.TrimSpace(*in.YapeQRURL)
	}
	if in.PlinPhone != nil {
		s.PlinPhone = strings.TrimSpace(*in.PlinPhone)
	}
	if in.PlinQRURL != nil {
		s.PlinQRURL = strings.TrimSpace(*in.PlinQRURL)
	}
	if in.Instructions != nil {
		s.Instructions = strings.TrimSpace(*in.Instructions)
	}

	if in.DefaultMethod != nil {
		m := model.PaymentMethod(strings.TrimSpace(*in.DefaultMethod))
		if m != "" && !model.ValidPaymentMethod(m) {
			return model.PaymentSettings{}, NewHTTPError(http.StatusBadRequest, "unknown payment method")
		}
		s.DefaultMethod = m
	}

	if in.CommissionRate != nil {
		rate, err := decimal.NewFromString(strings.TrimSpace(*in.CommissionRate))
		if err != nil {
			return model.PaymentSettings{}, NewHTTPError(http.StatusBadRequest, "invalid commission_rate")
		}
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return model.PaymentSettings{}, NewHTTPError(http.StatusBadRequest, "commission_rate must be between 0 and 1")
		}
		s.CommissionRate = rate
	}

	//整合チェック：ウォレットを有効にするなら送金先が要る。
	//既定手段は有効化されている手段に限る。
	if s.YapeEnabled && s.YapePhone == "" {
		return model.PaymentSettings{}, NewHTTPError(http.StatusBadRequest, "yape_phone is required to enable yape")
	}
	if s.PlinEnabled && s.PlinPhone == "" {
		return model.PaymentSettings{}, NewHTTPError(http.StatusBadRequest, "plin_phone is required to enable plin")
	}
	if s.DefaultMethod != "" && !s.MethodEnabled(s.DefaultMethod) {
		return model.PaymentSettings{}, NewHTTPError(http.StatusBadRequest, "default_method must be an enabled method")
	}

	if err := u.settings.Update(ctx, s); err != nil {
		return model.PaymentSettings{}, internalError(u.log, "settings.update", err)
	}
	return s, nil
}
