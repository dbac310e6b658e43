package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

func boolPtr(v bool) *bool       { return &v }
func strPtr(v string) *string    { return &v }

func TestGetPublicMethodsDegradesWhenMissing(t *testing.T) {
	settings := new(PaymentSettingsRepoMock)
	uc := NewPaymentSettingsUsecase(settings, zap.NewNop())

	settings.On("FindByCuratorID", mock.Anything, int64(10)).Return(model.PaymentSettings{}, repo.ErrNotFound)

	out := uc.GetPublicMethods(context.Background(), 10)

	assert.Empty(t, out.Methods)
	got := decimal.RequireFromString(out.CommissionRate)
	assert.True(t, got.Equal(model.DefaultCommissionRate))
}

// DB障害でも購入ページは落とさない（空の手段リストに劣化）
func TestGetPublicMethodsDegradesOnError(t *testing.T) {
	settings := new(PaymentSettingsRepoMock)
	uc := NewPaymentSettingsUsecase(settings, zap.NewNop())

	settings.On("FindByCuratorID", mock.Anything, int64(10)).Return(model.PaymentSettings{}, errors.New("db down"))

	out := uc.GetPublicMethods(context.Background(), 10)

	assert.Empty(t, out.Methods)
	got := decimal.RequireFromString(out.CommissionRate)
	assert.True(t, got.Equal(model.DefaultCommissionRate))
}

func TestGetPublicMethodsListsEnabledWallets(t *testing.T) {
	settings := new(PaymentSettingsRepoMock)
	uc := NewPaymentSettingsUsecase(settings, zap.NewNop())

	settings.On("FindByCuratorID", mock.Anything, int64(10)).Return(model.PaymentSettings{
		CuratorID:      10,
		YapeEnabled:    true,
		YapePhone:      "987654321",
		YapeQRURL:      "https://cdn.example.com/yape.png",
		DefaultMethod:  model.PaymentMethodYape,
		CommissionRate: decimal.RequireFromString("0.15"),
	}, nil)

	out := uc.GetPublicMethods(context.Background(), 10)

	assert.Len(t, out.Methods, 1)
	assert.Equal(t, "yape", out.Methods[0].Method)
	assert.Equal(t, "987654321", out.Methods[0].Phone)
	assert.Equal(t, "yape", out.DefaultMethod)
	assert.True(t, decimal.RequireFromString(out.CommissionRate).Equal(decimal.RequireFromString("0.15")))
}

func TestGetMySettingsLazyCreatesDefaults(t *testing.T) {
	settings := new(PaymentSettingsRepoMock)
	uc := NewPaymentSettingsUsecase(settings, zap.NewNop())

	settings.On("FindByCuratorID", mock.Anything, int64(10)).Return(model.PaymentSettings{}, repo.ErrNotFound)
	settings.On("Create", mock.Anything, mock.MatchedBy(func(s model.PaymentSettings) bool {
		return s.CuratorID == 10 && s.CommissionRate.Equal(model.DefaultCommissionRate)
	})).Return(model.PaymentSettings{ID: 1, CuratorID: 10, CommissionRate: model.DefaultCommissionRate}, nil)

	out, err := uc.GetMySettings(context.Background(), 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(10), out.CuratorID)
	assert.True(t, out.CommissionRate.Equal(model.DefaultCommissionRate))
	settings.AssertExpectations(t)
}

func existingSettings() model.PaymentSettings {
	return model.PaymentSettings{
		ID: 1, CuratorID: 10,
		CommissionRate: model.DefaultCommissionRate,
	}
}

func TestUpdateSettingsPartialUpdate(t *testing.T) {
	settings := new(PaymentSettingsRepoMock)
	uc := NewPaymentSettingsUsecase(settings, zap.NewNop())

	settings.On("FindByCuratorID", mock.Anything, int64(10)).Return(existingSettings(), nil)

	var saved model.PaymentSettings
	settings.On("Update", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(model.PaymentSettings) }).
		Return(nil)

	out, err := uc.UpdateSettings(context.Background(), 10, UpdateSettingsInput{
		YapeEnabled: boolPtr(true),
		YapePhone:   strPtr("987654321"),
	})

	assert.NoError(t, err)
	assert.True(t, out.YapeEnabled)
	assert.Equal(t, "987654321", out.YapePhone)

	//nilのフィールドは変更されない
	assert.False(t, saved.StripeEnabled)
	assert.False(t, saved.PlinEnabled)
	assert.True(t, saved.CommissionRate.Equal(model.DefaultCommissionRate))
}

func TestUpdateSettingsValidation(t *testing.T) {
	tests := []struct {
		name string
		in   UpdateSettingsInput
	}{
		{"wallet without phone", UpdateSettingsInput{PlinEnabled: boolPtr(true)}},
		{"default method not enabled", UpdateSettingsInput{DefaultMethod: strPtr("stripe")}},
		{"unknown default method", UpdateSettingsInput{DefaultMethod: strPtr("efectivo")}},
		{"rate above one", UpdateSettingsInput{CommissionRate: strPtr("1.5")}},
		{"negative rate", UpdateSettingsInput{CommissionRate: strPtr("-0.1")}},
		{"malformed rate", UpdateSettingsInput{CommissionRate: strPtr("ten percent")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := new(PaymentSettingsRepoMock)
			uc := NewPaymentSettingsUsecase(settings, zap.NewNop())
			settings.On("FindByCuratorID", mock.Anything, int64(10)).Return(existingSettings(), nil)

			_, err := uc.UpdateSettings(context.Background(), 10, tt.in)

			he, ok := AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
			settings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}
